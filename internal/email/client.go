package email

import (
	"crypto/tls"
	"fmt"
	"strconv"
	"time"

	"github.com/OthmanASSAS/slotify/internal/application"
	"github.com/wneessen/go-mail"
)

// Client sends Slotify's transactional email over SMTP. It implements
// application.EmailSender.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
	baseURL   string
}

// NewClient creates a new email client. baseURL is the public origin used
// for the cancellation link in confirmation emails.
func NewClient(host, portStr, user, password, fromName, fromEmail, baseURL string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
		baseURL:   baseURL,
	}, nil
}

// send delivers one HTML email.
func (c *Client) send(to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client (host=%s port=%d): %w", c.host, c.port, err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email (host=%s port=%d): %w", c.host, c.port, err)
	}

	return nil
}

// formatDate renders a business day key for display in email bodies.
func formatDate(dayKey string) string {
	t, err := time.Parse("2006-01-02", dayKey)
	if err != nil {
		return dayKey
	}
	return t.Format("Monday, January 2, 2006")
}

// SendReservationConfirmation confirms a single committed reservation.
func (c *Client) SendReservationConfirmation(to string, r application.ReservationEmail) error {
	subject := "Your Slotify reservation is confirmed"

	htmlBody := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
			<h1 style="color: #2563eb;">Reservation confirmed</h1>
			<p>Hello,</p>
			<p>Your study room reservation has been registered.</p>

			<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
				<p style="margin: 5px 0;"><strong>Date:</strong> %s</p>
				<p style="margin: 5px 0;"><strong>Time:</strong> %s - %s</p>
				<p style="margin: 5px 0;"><strong>Cancellation code:</strong> <code style="background: #fff; padding: 2px 5px; border-radius: 4px; font-size: 1.2em;">%s</code></p>
			</div>

			<p>If you can no longer attend, please cancel your reservation so the place frees up for other students. Cancellations close 24 hours before the slot starts.</p>

			<a href="%s/cancel" style="display: inline-block; background-color: #dc2626; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; margin-top: 10px;">
				Cancel my reservation
			</a>
		</div>
	`,
		formatDate(r.Date),
		r.StartTime,
		r.EndTime,
		r.CancellationCode,
		c.baseURL,
	)

	return c.send(to, subject, htmlBody)
}

// SendBulkReservationConfirmation confirms a batch of reservations in one
// consolidated email.
func (c *Client) SendBulkReservationConfirmation(to string, reservations []application.ReservationEmail) error {
	subject := fmt.Sprintf("Your %d Slotify reservations are confirmed", len(reservations))

	reservationsHTML := ""
	for _, r := range reservations {
		reservationsHTML += fmt.Sprintf(`
			<div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin-bottom: 10px;">
				<p style="margin: 5px 0;"><strong>%s</strong></p>
				<p style="margin: 5px 0;">%s - %s</p>
				<p style="margin: 5px 0;">Code: <code style="background: #fff; padding: 2px 5px; border-radius: 4px;">%s</code></p>
			</div>
		`,
			formatDate(r.Date),
			r.StartTime,
			r.EndTime,
			r.CancellationCode,
		)
	}

	htmlBody := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
			<h1 style="color: #2563eb;">Reservations confirmed</h1>
			<p>Hello,</p>
			<p>Your %d study room reservations have been registered.</p>

			<div style="margin: 20px 0;">
				%s
			</div>

			<p><strong>Note:</strong> to cancel, use the code matching each individual slot.</p>

			<a href="%s/cancel" style="display: inline-block; background-color: #dc2626; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; margin-top: 10px;">
				Cancel a reservation
			</a>
		</div>
	`,
		len(reservations),
		reservationsHTML,
		c.baseURL,
	)

	return c.send(to, subject, htmlBody)
}

// SendMagicLink delivers the link granting access to the recipient's
// reservations.
func (c *Client) SendMagicLink(to, linkURL string) error {
	subject := "Access your Slotify reservations"

	htmlBody := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
			<h1 style="color: #2563eb;">Your reservations</h1>
			<p>Hello,</p>
			<p>You asked to access your reservations. Click the button below to manage them:</p>

			<div style="text-align: center; margin: 30px 0;">
				<a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold; font-size: 16px;">
					View my reservations
				</a>
			</div>

			<p style="color: #666; font-size: 14px;">This link is valid for a limited time.</p>
			<p style="color: #666; font-size: 14px;">If you did not request this email, you can ignore it.</p>
		</div>
	`, linkURL)

	return c.send(to, subject, htmlBody)
}
