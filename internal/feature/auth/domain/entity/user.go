// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is an operator allowed to change the stock catalogue.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email is unique and stored lower-cased.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password holds the bcrypt hash, never the plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
