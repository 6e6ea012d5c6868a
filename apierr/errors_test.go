package apierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	assert.ErrorIs(t, ErrConflictingRateLimit, ErrConfig)
	assert.ErrorIs(t, ErrMissingRateLimit, ErrConfig)
	assert.ErrorIs(t, ErrInvalidLogin, ErrConfig)
	assert.NotErrorIs(t, ErrVideoDuration, ErrConfig)
	assert.NotErrorIs(t, ErrLoginRequired, ErrConfig)
}

func TestServerError(t *testing.T) {
	t.Run("with payload", func(t *testing.T) {
		err := &ServerError{Status: 400, Message: "bad page", Payload: []byte(`{"code":"x"}`)}
		assert.Equal(t, `sankaku server error: status 400: bad page: {"code":"x"}`, err.Error())
	})

	t.Run("falls back to status text", func(t *testing.T) {
		err := &ServerError{Status: 502}
		assert.Equal(t, "sankaku server error: status 502: Bad Gateway", err.Error())
	})
}

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("get post: %w", &NotFoundError{Status: 404, ID: 42})
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "not found: 42 (status 404)")

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, 42, nf.ID)

	assert.False(t, IsNotFound(errors.New("other")))
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"authorization error", &AuthorizationError{Status: 401}, true},
		{"server 401", &ServerError{Status: 401}, true},
		{"server 403", &ServerError{Status: 403}, true},
		{"server 404", &ServerError{Status: 404}, false},
		{"not found", &NotFoundError{Status: 401}, false},
		{"plain", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUnauthorized(tt.err))
		})
	}
}
