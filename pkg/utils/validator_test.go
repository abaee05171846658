package utils

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email  string          `json:"email" validate:"required,email"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	errs := ValidateStruct(sampleRequest{
		Email:  "nope",
		Amount: decimal.Zero,
		Date:   "17/10/2026",
	})

	assert.Equal(t, "Invalid email format", errs["email"])
	assert.Equal(t, "Must be greater than 0", errs["amount"])
	assert.Equal(t, "Must match layout 2006-01-02", errs["date"])
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(sampleRequest{
		Email:  "a@b.vn",
		Amount: decimal.NewFromInt(200000),
		Date:   "2026-10-17",
	})

	assert.Empty(t, errs)
}

func TestValidationError_WrapsKind(t *testing.T) {
	err := ValidationError(map[string]string{"b": "x", "a": "y"})

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation failed: a: y; b: x", err.Error())
}
