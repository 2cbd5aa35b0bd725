package models

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID             = errors.New("id is required")
	ErrNegativeWeight      = errors.New("weight cannot be negative")
	ErrNegativeValue       = errors.New("value cannot be negative")
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")
)

func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyID
	}
	if i.Weight < 0 {
		return ErrNegativeWeight
	}
	if i.Value.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}

func (l LineItem) Validate() error {
	if l.Quantity < 1 {
		return ErrNonPositiveQuantity
	}
	return l.Item.Validate()
}

// ValidateQuantity checks the strictly positive quantity rule shared by stock
// and line items.
func ValidateQuantity(q int) error {
	if q < 1 {
		return ErrNonPositiveQuantity
	}
	return nil
}
