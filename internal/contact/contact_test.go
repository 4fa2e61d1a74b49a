package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/neexbeast/explorex/internal/contact"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func validMessage() contact.Message {
	return contact.Message{
		Name:    "Ada Traveler",
		Email:   "ada@example.com",
		Subject: "Trip to Kyoto",
		Message: "Do you have tours in April?",
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validMessage().Validate())
}

func TestValidate_MissingFields(t *testing.T) {
	msg := validMessage()
	msg.Name = "  "
	msg.Message = ""

	err := msg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, contact.ErrInvalid))
	assert.Contains(t, err.Error(), "name, message required")
}

func TestValidate_BadEmail(t *testing.T) {
	msg := validMessage()
	msg.Email = "not-an-email"

	err := msg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, contact.ErrInvalid))
	assert.Contains(t, err.Error(), "email")
}

func TestSubmit_WaitsDelay(t *testing.T) {
	s := contact.NewSubmitter(50 * time.Millisecond)

	start := time.Now()
	receipt, err := s.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, "Message Sent!", receipt.Title)
	_, parseErr := uuid.Parse(receipt.ID)
	assert.NoError(t, parseErr)
	assert.False(t, receipt.ReceivedAt.IsZero())
}

func TestSubmit_ZeroDelay(t *testing.T) {
	s := contact.NewSubmitter(0)
	receipt, err := s.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
}

func TestSubmit_Cancelled(t *testing.T) {
	s := contact.NewSubmitter(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Submit(ctx, validMessage())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSubmit_InvalidSkipsDelay(t *testing.T) {
	s := contact.NewSubmitter(time.Hour)

	_, err := s.Submit(context.Background(), contact.Message{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, contact.ErrInvalid))
}

func TestSubmit_UniqueReceipts(t *testing.T) {
	s := contact.NewSubmitter(0)
	a, err := s.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	b, err := s.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCheckDelay(t *testing.T) {
	tests := []struct {
		name    string
		delay   time.Duration
		wantErr bool
	}{
		{"zero", 0, false},
		{"default", contact.DefaultDelay, false},
		{"at max", contact.MaxDelay, false},
		{"negative", -time.Second, true},
		{"past write timeout", 15 * time.Second, true},
		{"hour", time.Hour, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := contact.CheckDelay(tt.delay)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
