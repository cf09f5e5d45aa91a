package postgres

import (
	"database/sql"

	"assembl/internal/domain"
)

// CategoryRepo implements repository.CategoryRepository
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// GetCategories returns all categories in creation order
func (r *CategoryRepo) GetCategories() ([]domain.Category, error) {
	query := `SELECT name, description FROM categories ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, storeError(domain.OpGetCategories, err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Description); err != nil {
			return nil, storeError(domain.OpGetCategories, err)
		}
		categories = append(categories, c)
	}

	return categories, storeError(domain.OpGetCategories, rows.Err())
}
