package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendWithoutCredentials(t *testing.T) {
	n := New(Config{Host: "smtp.gmail.com", Port: 465})
	err := n.Send(context.Background(), "subject", "<p>body</p>", []string{"a@example.com"})
	require.ErrorIs(t, err, ErrDeliveryUnavailable)
}

func TestSendWithoutRecipients(t *testing.T) {
	n := New(Config{
		Host:     "smtp.gmail.com",
		Port:     465,
		User:     "reporter@example.com",
		Password: "app-password",
	})
	err := n.Send(context.Background(), "subject", "<p>body</p>", nil)
	require.ErrorIs(t, err, ErrDeliveryUnavailable)
}
