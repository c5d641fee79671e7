package model

import (
	"time"

	"github.com/google/uuid"
)

// Session represents the authenticated admin. It only ever exists in process memory.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
