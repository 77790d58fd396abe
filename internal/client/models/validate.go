package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid record")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and the numeric fields validator cannot see.
func Validate(r Record) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var nums map[string]decimal.Decimal
	switch v := r.(type) {
	case *Subwork:
		nums = map[string]decimal.Decimal{"default rate": v.DefaultRate}
	case *Entry:
		nums = map[string]decimal.Decimal{
			"number":  v.Number,
			"length":  v.Length,
			"breadth": v.Breadth,
			"depth":   v.Depth,
			"rate":    v.Rate,
		}
	}
	for name, d := range nums {
		if d.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, name)
		}
	}
	return nil
}
