// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the owner of a financial profile.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	MilestoneReminders bool // Send an email when a goal crosses 25/50/75/100%
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		MilestoneReminders: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
