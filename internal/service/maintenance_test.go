package service

import (
	"errors"
	"testing"

	"assembl/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

func TestMaintenanceService_PruneGroups(t *testing.T) {
	botUser := &tele.User{ID: 999, IsBot: true}

	mockRepo := new(testutil.MockGroupRepository)
	mockMembers := new(testutil.MockMemberChecker)

	mockRepo.On("GetGroups").Return([]int64{-1, -2, -3, -4}, nil)
	mockMembers.On("ChatMemberOf", tele.ChatID(-1), botUser).Return(testutil.NewTestMember(999, tele.Administrator), nil)
	mockMembers.On("ChatMemberOf", tele.ChatID(-2), botUser).Return(testutil.NewTestMember(999, tele.Kicked), nil)
	mockMembers.On("ChatMemberOf", tele.ChatID(-3), botUser).Return(nil, errors.New("chat not found"))
	mockMembers.On("ChatMemberOf", tele.ChatID(-4), botUser).Return(testutil.NewTestMember(999, tele.Left), nil)
	mockRepo.On("DeleteGroup", int64(-2)).Return(nil)
	mockRepo.On("DeleteGroup", int64(-4)).Return(nil)

	service := NewMaintenanceService(mockRepo, mockMembers, testutil.NewTestLogger())
	err := service.PruneGroups(botUser)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "DeleteGroup", int64(-1))
	mockRepo.AssertNotCalled(t, "DeleteGroup", int64(-3))
}

func TestMaintenanceService_PruneGroups_Errors(t *testing.T) {
	t.Run("groups unavailable", func(t *testing.T) {
		mockRepo := new(testutil.MockGroupRepository)
		mockMembers := new(testutil.MockMemberChecker)
		mockRepo.On("GetGroups").Return(nil, errors.New("db error"))

		service := NewMaintenanceService(mockRepo, mockMembers, testutil.NewTestLogger())
		err := service.PruneGroups(&tele.User{ID: 1})

		assert.Error(t, err)
		mockMembers.AssertNotCalled(t, "ChatMemberOf", mock.Anything, mock.Anything)
	})

	t.Run("delete fails", func(t *testing.T) {
		mockRepo := new(testutil.MockGroupRepository)
		mockMembers := new(testutil.MockMemberChecker)
		mockRepo.On("GetGroups").Return([]int64{-1}, nil)
		mockMembers.On("ChatMemberOf", tele.ChatID(-1), mock.Anything).Return(testutil.NewTestMember(1, tele.Left), nil)
		mockRepo.On("DeleteGroup", int64(-1)).Return(errors.New("db error"))

		service := NewMaintenanceService(mockRepo, mockMembers, testutil.NewTestLogger())
		err := service.PruneGroups(&tele.User{ID: 1})

		assert.Error(t, err)
	})
}
