package application

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// cancellationCodeAlphabet gives 36^8 possible codes (~41 bits of entropy),
// enough for a human-enterable secret whose only use is self-service
// cancellation of one reservation.
const (
	cancellationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	cancellationCodeLength   = 8
)

// GenerateCancellationCode returns an 8-character uppercase alphanumeric
// code drawn uniformly from crypto/rand.
func GenerateCancellationCode() (string, error) {
	code := make([]byte, cancellationCodeLength)
	max := big.NewInt(int64(len(cancellationCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw cancellation code character: %w", err)
		}
		code[i] = cancellationCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// GenerateToken returns a 256-bit random token, hex encoded, for magic links
// and pending reservations.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
