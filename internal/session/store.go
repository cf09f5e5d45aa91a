// Package session keeps the conversation state of a user between updates.
package session

import (
	"context"

	"assembl/internal/domain"
)

// Key identifies one user's session in one chat
type Key struct {
	ChatID int64
	UserID int64
}

// Store defines conversation state operations.
// Get never returns nil; a missing session comes back idle.
type Store interface {
	Get(ctx context.Context, key Key) (*domain.Session, error)
	Save(ctx context.Context, key Key, s *domain.Session) error
	Clear(ctx context.Context, key Key) error
}
