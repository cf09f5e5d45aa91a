package service

import (
	"errors"
	"fmt"

	"assembl/internal/domain"
	"assembl/internal/repository"

	"go.uber.org/zap"
)

// ErrIncompleteFlow is returned when a confirmed operation lacks captured data
var ErrIncompleteFlow = errors.New("operation is missing required data")

// PhotoService commits confirmed photo operations
type PhotoService struct {
	photoRepo repository.PhotoRepository
	logger    *zap.Logger
}

// NewPhotoService creates a new photo service
func NewPhotoService(photoRepo repository.PhotoRepository, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		logger:    logger,
	}
}

// Add stores a new photo in its category
func (s *PhotoService) Add(f *domain.AddCapture) error {
	if f == nil || !domain.Ready(f) {
		return ErrIncompleteFlow
	}

	err := s.photoRepo.AddPhoto(domain.Photo{
		PhotoID:             f.PhotoID,
		Description:         f.Description,
		DescriptionTranslit: f.DescriptionTranslit,
		Category:            f.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to add photo: %w", err)
	}

	s.logger.Info("Photo added",
		zap.String("photo_id", f.PhotoID),
		zap.String("description", f.Description),
		zap.String("category", f.Category),
	)
	return nil
}

// Replace swaps the file of a stored photo
func (s *PhotoService) Replace(f *domain.ReplaceCapture) error {
	if f == nil || !domain.Ready(f) {
		return ErrIncompleteFlow
	}

	if err := s.photoRepo.UpdatePhotoID(f.PhotoID, f.NewPhotoID); err != nil {
		return fmt.Errorf("failed to replace photo: %w", err)
	}

	s.logger.Info("Photo replaced",
		zap.String("photo_id", f.PhotoID),
		zap.String("new_photo_id", f.NewPhotoID),
	)
	return nil
}

// UpdateDescription changes the description of a stored photo
func (s *PhotoService) UpdateDescription(f *domain.EditDescriptionCapture) error {
	if f == nil || !domain.Ready(f) {
		return ErrIncompleteFlow
	}

	if err := s.photoRepo.UpdateDescription(f.PhotoID, f.NewDescription, f.NewDescriptionTranslit); err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}

	s.logger.Info("Photo description updated",
		zap.String("photo_id", f.PhotoID),
		zap.String("description", f.NewDescription),
	)
	return nil
}

// Delete removes a stored photo
func (s *PhotoService) Delete(f *domain.DeleteConfirm) error {
	if f == nil || !domain.Ready(f) {
		return ErrIncompleteFlow
	}

	if err := s.photoRepo.DeletePhoto(f.PhotoID); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	s.logger.Info("Photo deleted", zap.String("photo_id", f.PhotoID))
	return nil
}
