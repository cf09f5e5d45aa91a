package service

import (
	"fmt"

	"assembl/internal/repository"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// MemberChecker looks up a user's membership in a chat. *tele.Bot satisfies it.
type MemberChecker interface {
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// AuthService decides who may change the catalog
type AuthService struct {
	groupRepo repository.GroupRepository
	members   MemberChecker
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(groupRepo repository.GroupRepository, members MemberChecker, logger *zap.Logger) *AuthService {
	return &AuthService{
		groupRepo: groupRepo,
		members:   members,
		logger:    logger,
	}
}

// IsAdmin checks the user against every registered group
func (s *AuthService) IsAdmin(userID int64) (bool, error) {
	groupIDs, err := s.groupRepo.GetGroups()
	if err != nil {
		return false, fmt.Errorf("failed to load groups: %w", err)
	}
	return s.IsAdminIn(userID, groupIDs), nil
}

// IsAdminIn reports whether the user is administrator or creator in any of
// groupIDs. Groups are queried in order and the first match stops the loop.
// A failed lookup counts as "not admin there".
func (s *AuthService) IsAdminIn(userID int64, groupIDs []int64) bool {
	user := &tele.User{ID: userID}

	for _, groupID := range groupIDs {
		member, err := s.members.ChatMemberOf(tele.ChatID(groupID), user)
		if err != nil {
			s.logger.Warn("Failed to check admin rank in group",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.Int64("group_id", groupID),
			)
			continue
		}
		if isAdminRole(member.Role) {
			return true
		}
	}
	return false
}

// RegisterGroup stores a group the bot administers. Registering twice is a no-op.
func (s *AuthService) RegisterGroup(groupID int64, title string) error {
	name := GroupName(groupID, title)
	if err := s.groupRepo.AddGroup(groupID, name); err != nil {
		return fmt.Errorf("failed to register group: %w", err)
	}

	s.logger.Info("Group registered",
		zap.Int64("group_id", groupID),
		zap.String("group_name", name),
	)
	return nil
}

// UnregisterGroup forgets a group the bot left
func (s *AuthService) UnregisterGroup(groupID int64) error {
	if err := s.groupRepo.DeleteGroup(groupID); err != nil {
		return fmt.Errorf("failed to unregister group: %w", err)
	}

	s.logger.Info("Group unregistered", zap.Int64("group_id", groupID))
	return nil
}

// GroupName returns the label stored for a group
func GroupName(groupID int64, title string) string {
	if title == "" {
		return fmt.Sprintf("Группа без имени (%d)", groupID)
	}
	return title
}

func isAdminRole(role tele.MemberStatus) bool {
	return role == tele.Administrator || role == tele.Creator
}
