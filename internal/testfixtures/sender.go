package testfixtures

import (
	"sync"

	"github.com/OthmanASSAS/slotify/internal/application"
)

// SentBulk is one recorded consolidated confirmation.
type SentBulk struct {
	To           string
	Reservations []application.ReservationEmail
}

// SentLink is one recorded magic-link email.
type SentLink struct {
	To  string
	URL string
}

// SentSingle is one recorded single-reservation confirmation.
type SentSingle struct {
	To          string
	Reservation application.ReservationEmail
}

// RecordingSender captures outgoing email instead of delivering it. Setting
// Fail makes every send return an error.
type RecordingSender struct {
	mu      sync.Mutex
	Fail    error
	Singles []SentSingle
	Bulks   []SentBulk
	Links   []SentLink
}

func (s *RecordingSender) SendReservationConfirmation(to string, r application.ReservationEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.Singles = append(s.Singles, SentSingle{To: to, Reservation: r})
	return nil
}

func (s *RecordingSender) SendBulkReservationConfirmation(to string, reservations []application.ReservationEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.Bulks = append(s.Bulks, SentBulk{To: to, Reservations: reservations})
	return nil
}

func (s *RecordingSender) SendMagicLink(to, linkURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.Links = append(s.Links, SentLink{To: to, URL: linkURL})
	return nil
}
