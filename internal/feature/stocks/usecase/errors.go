// Package usecase implements the business logic for the stocks feature.
package usecase

import "errors"

var (
	// ErrNegativePrice is returned when a create or update request carries a price below zero.
	ErrNegativePrice = errors.New("price must not be negative")

	// ErrPriceScale is returned when a price has more decimal places than the store keeps.
	ErrPriceScale = errors.New("price must have at most 4 decimal places")
)
