package repository

import (
	"assembl/internal/domain"
)

// GroupRepository defines group data operations
type GroupRepository interface {
	GetGroups() ([]int64, error)
	AddGroup(groupID int64, groupName string) error
	DeleteGroup(groupID int64) error
}

// CategoryRepository defines category data operations
type CategoryRepository interface {
	GetCategories() ([]domain.Category, error)
}

// PhotoRepository defines photo data operations
type PhotoRepository interface {
	GetPhotos(category string, limit, offset int) ([]domain.Photo, error)
	GetTotalPhotos(category string) (int, error)
	// GetDescription returns a placeholder text, not an error, when the photo is unknown
	GetDescription(photoID string) (string, error)
	GetPhotoID(description string) (string, error)
	SearchPhotos(category, query string) ([]domain.Photo, error)
	AddPhoto(photo domain.Photo) error
	UpdatePhotoID(photoID, newPhotoID string) error
	UpdateDescription(photoID, description, descriptionTranslit string) error
	DeletePhoto(photoID string) error
}
