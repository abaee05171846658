package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError_KindAndMessage(t *testing.T) {
	err := NotFound("booking %d not found", 7)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "booking 7 not found", err.Error())
}

func TestExternal_KeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := External(cause, "payment gateway unavailable")

	assert.ErrorIs(t, err, ErrExternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "payment gateway unavailable", err.Error())
}

func TestValidationError_Fields(t *testing.T) {
	err := ValidationError(map[string]string{"email": "Invalid email format"})

	var e *Error
	if assert.True(t, errors.As(err, &e)) {
		assert.Equal(t, "Invalid email format", e.Fields["email"])
	}
}
