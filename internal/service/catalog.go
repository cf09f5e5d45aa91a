package service

import (
	"fmt"
	"strings"

	"assembl/internal/domain"
	"assembl/internal/repository"
)

// CatalogService handles read access to categories and photos
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	photoRepo    repository.PhotoRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(categoryRepo repository.CategoryRepository, photoRepo repository.PhotoRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		photoRepo:    photoRepo,
	}
}

// Categories returns every category
func (s *CatalogService) Categories() ([]domain.Category, error) {
	categories, err := s.categoryRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// FindCategory returns the category whose name equals name exactly
func (s *CatalogService) FindCategory(name string) (*domain.Category, error) {
	categories, err := s.Categories()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Name == name {
			return &categories[i], nil
		}
	}
	return nil, nil
}

// CategoryPage returns one page of a category. The page number is clamped to
// the existing pages, so the offset is never negative.
func (s *CatalogService) CategoryPage(category string, page int) (domain.Page, error) {
	total, err := s.photoRepo.GetTotalPhotos(category)
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to count photos: %w", err)
	}

	totalPages := domain.TotalPages(total)
	page = domain.ClampPage(page, totalPages)

	result := domain.Page{
		Category:   category,
		Number:     page,
		TotalPages: totalPages,
	}
	if total == 0 {
		return result, nil
	}

	photos, err := s.photoRepo.GetPhotos(category, domain.PageSize, domain.Offset(page))
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to get photos: %w", err)
	}
	result.Photos = photos

	return result, nil
}

// Search finds photos of a category by description in either script
func (s *CatalogService) Search(category, query string) ([]domain.Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	photos, err := s.photoRepo.SearchPhotos(category, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search photos: %w", err)
	}
	return photos, nil
}

// PhotoByDescription returns the file id of the photo with description, or ""
func (s *CatalogService) PhotoByDescription(description string) (string, error) {
	photoID, err := s.photoRepo.GetPhotoID(description)
	if err != nil {
		return "", fmt.Errorf("failed to get photo: %w", err)
	}
	return photoID, nil
}

// Description returns the stored description of a photo
func (s *CatalogService) Description(photoID string) (string, error) {
	description, err := s.photoRepo.GetDescription(photoID)
	if err != nil {
		return "", fmt.Errorf("failed to get description: %w", err)
	}
	return description, nil
}
