package postgres

import (
	"database/sql"

	"assembl/internal/domain"
)

// GroupRepo implements repository.GroupRepository
type GroupRepo struct {
	db *sql.DB
}

// NewGroupRepo creates a new group repository
func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// GetGroups returns ids of all registered groups
func (r *GroupRepo) GetGroups() ([]int64, error) {
	query := `SELECT group_id FROM groups ORDER BY created_at, group_id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, storeError(domain.OpGetGroups, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storeError(domain.OpGetGroups, err)
		}
		ids = append(ids, id)
	}

	return ids, storeError(domain.OpGetGroups, rows.Err())
}

// AddGroup registers a group; an already registered group is left as is
func (r *GroupRepo) AddGroup(groupID int64, groupName string) error {
	query := `
		INSERT INTO groups (group_id, group_name)
		VALUES ($1, $2)
		ON CONFLICT (group_id) DO NOTHING
	`
	_, err := r.db.Exec(query, groupID, groupName)
	return storeError(domain.OpAddGroup, err)
}

// DeleteGroup removes a group
func (r *GroupRepo) DeleteGroup(groupID int64) error {
	query := `DELETE FROM groups WHERE group_id = $1`
	_, err := r.db.Exec(query, groupID)
	return storeError(domain.OpDeleteGroup, err)
}
