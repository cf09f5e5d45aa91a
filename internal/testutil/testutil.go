package testutil

import (
	"assembl/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestPhoto creates a test photo
func NewTestPhoto(id int, photoID, description, category string) domain.Photo {
	return domain.Photo{
		ID:          id,
		PhotoID:     photoID,
		Description: description,
		Category:    category,
	}
}

// NewTestMember creates a chat member with the given role
func NewTestMember(userID int64, role tele.MemberStatus) *tele.ChatMember {
	return &tele.ChatMember{
		User: &tele.User{ID: userID},
		Role: role,
	}
}
