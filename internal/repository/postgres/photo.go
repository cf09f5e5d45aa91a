package postgres

import (
	"database/sql"
	"errors"

	"assembl/internal/domain"
)

// PhotoRepo implements repository.PhotoRepository
type PhotoRepo struct {
	db *sql.DB
}

// NewPhotoRepo creates a new photo repository
func NewPhotoRepo(db *sql.DB) *PhotoRepo {
	return &PhotoRepo{db: db}
}

// GetPhotos returns one page of a category ordered by insertion
func (r *PhotoRepo) GetPhotos(category string, limit, offset int) ([]domain.Photo, error) {
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT id, photo_id, description, COALESCE(description_translit, ''), category
		FROM photos
		WHERE category = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, category, limit, offset)
	if err != nil {
		return nil, storeError(domain.OpGetPhotos, err)
	}
	defer rows.Close()

	photos, err := scanPhotos(rows)
	return photos, storeError(domain.OpGetPhotos, err)
}

// GetTotalPhotos returns number of photos in a category
func (r *PhotoRepo) GetTotalPhotos(category string) (int, error) {
	query := `SELECT COUNT(*) FROM photos WHERE category = $1`

	var count int
	err := r.db.QueryRow(query, category).Scan(&count)
	return count, storeError(domain.OpGetTotalPhotos, err)
}

// GetDescription returns the description of a photo, or domain.NoDescription
func (r *PhotoRepo) GetDescription(photoID string) (string, error) {
	query := `SELECT description FROM photos WHERE photo_id = $1`

	var description string
	err := r.db.QueryRow(query, photoID).Scan(&description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NoDescription, nil
	}
	if err != nil {
		return "", storeError(domain.OpGetDescription, err)
	}

	return description, nil
}

// GetPhotoID returns the file id of the photo with description, or "" if none
func (r *PhotoRepo) GetPhotoID(description string) (string, error) {
	query := `SELECT photo_id FROM photos WHERE description = $1`

	var photoID string
	err := r.db.QueryRow(query, description).Scan(&photoID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", storeError(domain.OpGetPhotoID, err)
	}

	return photoID, nil
}

// SearchPhotos finds photos of a category whose description, in either
// script, contains query. Case-insensitive.
func (r *PhotoRepo) SearchPhotos(category, query string) ([]domain.Photo, error) {
	sqlQuery := `
		SELECT id, photo_id, description, COALESCE(description_translit, ''), category
		FROM photos
		WHERE category = $1
			AND (description ILIKE $2 OR description_translit ILIKE $2)
		ORDER BY id ASC
		LIMIT $3
	`

	rows, err := r.db.Query(sqlQuery, category, containsPattern(query), domain.MaxSearchResults)
	if err != nil {
		return nil, storeError(domain.OpSearchPhotos, err)
	}
	defer rows.Close()

	photos, err := scanPhotos(rows)
	return photos, storeError(domain.OpSearchPhotos, err)
}

// AddPhoto stores a photo, creating its category when missing. Runs in one
// transaction; a description already in the catalog aborts it, whatever the
// category or file id.
func (r *PhotoRepo) AddPhoto(photo domain.Photo) error {
	tx, err := r.db.Begin()
	if err != nil {
		return storeError(domain.OpAddPhoto, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO categories (name, description)
		VALUES ($1, $1)
		ON CONFLICT (name) DO NOTHING
	`, photo.Category)
	if err != nil {
		return storeError(domain.OpAddPhoto, err)
	}

	var taken bool
	err = tx.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM photos WHERE description = $1)
	`, photo.Description).Scan(&taken)
	if err != nil {
		return storeError(domain.OpAddPhoto, err)
	}
	if taken {
		return domain.NewStoreError(domain.OpAddPhoto, domain.KindDuplicateDescription, domain.ErrDuplicateDescription)
	}

	_, err = tx.Exec(`
		INSERT INTO photos (photo_id, description, description_translit, category)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (photo_id) DO UPDATE
		SET description = EXCLUDED.description,
			description_translit = EXCLUDED.description_translit,
			category = EXCLUDED.category
	`, photo.PhotoID, photo.Description, nullString(photo.DescriptionTranslit), photo.Category)
	if err != nil {
		return storeError(domain.OpAddPhoto, err)
	}

	return storeError(domain.OpAddPhoto, tx.Commit())
}

// UpdatePhotoID swaps the file id of a photo
func (r *PhotoRepo) UpdatePhotoID(photoID, newPhotoID string) error {
	query := `UPDATE photos SET photo_id = $1 WHERE photo_id = $2`
	res, err := r.db.Exec(query, newPhotoID, photoID)
	if err != nil {
		return storeError(domain.OpUpdatePhoto, err)
	}
	return expectAffected(domain.OpUpdatePhoto, res)
}

// UpdateDescription changes both script variants of a description
func (r *PhotoRepo) UpdateDescription(photoID, description, descriptionTranslit string) error {
	query := `
		UPDATE photos
		SET description = $1, description_translit = $2
		WHERE photo_id = $3
	`
	res, err := r.db.Exec(query, description, nullString(descriptionTranslit), photoID)
	if err != nil {
		return storeError(domain.OpUpdateDescription, err)
	}
	return expectAffected(domain.OpUpdateDescription, res)
}

// DeletePhoto removes a photo
func (r *PhotoRepo) DeletePhoto(photoID string) error {
	query := `DELETE FROM photos WHERE photo_id = $1`
	res, err := r.db.Exec(query, photoID)
	if err != nil {
		return storeError(domain.OpDeletePhoto, err)
	}
	return expectAffected(domain.OpDeletePhoto, res)
}

func scanPhotos(rows *sql.Rows) ([]domain.Photo, error) {
	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.PhotoID, &p.Description, &p.DescriptionTranslit, &p.Category); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
