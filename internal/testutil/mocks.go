package testutil

import (
	"assembl/internal/domain"

	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockGroupRepository is a mock for GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetGroups() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockGroupRepository) AddGroup(groupID int64, groupName string) error {
	args := m.Called(groupID, groupName)
	return args.Error(0)
}

func (m *MockGroupRepository) DeleteGroup(groupID int64) error {
	args := m.Called(groupID)
	return args.Error(0)
}

// MockCategoryRepository is a mock for CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetCategories() ([]domain.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// MockPhotoRepository is a mock for PhotoRepository
type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) GetPhotos(category string, limit, offset int) ([]domain.Photo, error) {
	args := m.Called(category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) GetTotalPhotos(category string) (int, error) {
	args := m.Called(category)
	return args.Int(0), args.Error(1)
}

func (m *MockPhotoRepository) GetDescription(photoID string) (string, error) {
	args := m.Called(photoID)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoRepository) GetPhotoID(description string) (string, error) {
	args := m.Called(description)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoRepository) SearchPhotos(category, query string) ([]domain.Photo, error) {
	args := m.Called(category, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) AddPhoto(photo domain.Photo) error {
	args := m.Called(photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) UpdatePhotoID(photoID, newPhotoID string) error {
	args := m.Called(photoID, newPhotoID)
	return args.Error(0)
}

func (m *MockPhotoRepository) UpdateDescription(photoID, description, descriptionTranslit string) error {
	args := m.Called(photoID, description, descriptionTranslit)
	return args.Error(0)
}

func (m *MockPhotoRepository) DeletePhoto(photoID string) error {
	args := m.Called(photoID)
	return args.Error(0)
}

// MockMemberChecker is a mock for the chat membership lookup
type MockMemberChecker struct {
	mock.Mock
}

func (m *MockMemberChecker) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	args := m.Called(chat, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.ChatMember), args.Error(1)
}
