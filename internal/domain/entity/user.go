// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the Dimdim system.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Currency     string // ISO 4217 code, defaults to BRL
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultCurrency is the currency assigned to new users.
const DefaultCurrency = "BRL"

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Currency:     DefaultCurrency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
