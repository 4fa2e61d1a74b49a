// Package contact handles contact-form submissions. Delivery is simulated: a
// submission waits a fixed delay and then reports success. Nothing is stored.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDelay is the simulated delivery time of a submission.
const DefaultDelay = 1500 * time.Millisecond

// MaxDelay bounds the simulated delivery time. It stays below the server's
// write timeout so a submission can always answer.
const MaxDelay = 10 * time.Second

// ErrInvalid is returned when a message fails validation.
var ErrInvalid = errors.New("invalid contact message")

// Message is a contact-form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks that every field is filled in and the email address parses.
func (m Message) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", m.Name},
		{"email", m.Email},
		{"subject", m.Subject},
		{"message", m.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrInvalid, strings.Join(missing, ", "))
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(m.Email)); err != nil {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalid)
	}
	return nil
}

// Receipt acknowledges a delivered submission.
type Receipt struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReceivedAt  time.Time `json:"received_at"`
}

// CheckDelay reports an error when d is negative or longer than MaxDelay.
func CheckDelay(d time.Duration) error {
	if d < 0 || d > MaxDelay {
		return fmt.Errorf("contact delay %s outside [0, %s]", d, MaxDelay)
	}
	return nil
}

// Submitter simulates delivery of contact messages.
type Submitter struct {
	delay time.Duration
	now   func() time.Time
}

// NewSubmitter constructs a Submitter that takes delay to deliver each message.
// A non-positive delay delivers immediately; a delay above MaxDelay is capped.
func NewSubmitter(delay time.Duration) *Submitter {
	return &Submitter{delay: min(delay, MaxDelay), now: time.Now}
}

// Submit validates msg, waits the configured delay and returns a receipt.
// If ctx ends first, the context error is returned.
func (s *Submitter) Submit(ctx context.Context, msg Message) (*Receipt, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("submitting contact message: %w", ctx.Err())
		}
	}

	return &Receipt{
		ID:          uuid.NewString(),
		Title:       "Message Sent!",
		Description: "Thank you for contacting us. We'll get back to you soon.",
		ReceivedAt:  s.now().UTC(),
	}, nil
}
