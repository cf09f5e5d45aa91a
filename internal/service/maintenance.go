package service

import (
	"fmt"

	"assembl/internal/repository"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// MaintenanceService keeps the group list in sync with Telegram
type MaintenanceService struct {
	groupRepo repository.GroupRepository
	members   MemberChecker
	logger    *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(groupRepo repository.GroupRepository, members MemberChecker, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		groupRepo: groupRepo,
		members:   members,
		logger:    logger,
	}
}

// PruneGroups removes groups the bot has left or was kicked from while it
// was not listening. Groups whose membership cannot be read are kept.
func (s *MaintenanceService) PruneGroups(botUser *tele.User) error {
	s.logger.Info("Starting group pruning")

	groupIDs, err := s.groupRepo.GetGroups()
	if err != nil {
		s.logger.Error("Failed to load groups for pruning", zap.Error(err))
		return fmt.Errorf("failed to load groups: %w", err)
	}

	removed := 0
	for _, groupID := range groupIDs {
		member, err := s.members.ChatMemberOf(tele.ChatID(groupID), botUser)
		if err != nil {
			s.logger.Warn("Failed to read bot membership",
				zap.Error(err),
				zap.Int64("group_id", groupID),
			)
			continue
		}
		if member.Role != tele.Left && member.Role != tele.Kicked {
			continue
		}

		if err := s.groupRepo.DeleteGroup(groupID); err != nil {
			s.logger.Error("Failed to delete stale group",
				zap.Error(err),
				zap.Int64("group_id", groupID),
			)
			return fmt.Errorf("failed to delete group %d: %w", groupID, err)
		}
		removed++
	}

	s.logger.Info("Group pruning completed",
		zap.Int("checked", len(groupIDs)),
		zap.Int("removed", removed),
	)
	return nil
}
