package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFatalClassification(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"load", NewLoadError("contacts.csv", "cannot open", cause), true},
		{"config", NewConfigError("host", "required"), true},
		{"connection", NewConnectionError("smtp", "dial failed", cause), true},
		{"transport", NewTransportError("smtp", "a@x.com", cause), false},
		{"close", NewCloseError("smtp", cause), false},
		{"plain", cause, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}

func TestIsFatalSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("run aborted: %w", NewConnectionError("smtp", "auth failed", errors.New("535")))

	assert.True(t, IsFatal(err))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")

	assert.ErrorIs(t, NewLoadError("f", "m", cause), cause)
	assert.ErrorIs(t, NewConnectionError("smtp", "m", cause), cause)
	assert.ErrorIs(t, NewTransportError("smtp", "a@x.com", cause), cause)
	assert.ErrorIs(t, NewCloseError("smtp", cause), cause)
}

func TestTransportErrorMessageNamesRecipient(t *testing.T) {
	err := NewTransportError("smtp", "a@x.com", errors.New("550 mailbox unavailable"))

	assert.Contains(t, err.Error(), "a@x.com")
	assert.Contains(t, err.Error(), "550 mailbox unavailable")
}

func TestErrorKindMatching(t *testing.T) {
	var transportErr *TransportError
	err := fmt.Errorf("wrapped: %w", NewTransportError("smtp", "a@x.com", errors.New("boom")))

	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "a@x.com", transportErr.Recipient)
}
