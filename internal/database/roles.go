package database

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Role is a role joined with the name of its department.
type Role struct {
	ID         int64   `db:"id" json:"id"`
	Title      string  `db:"title" json:"title"`
	Salary     float64 `db:"salary" json:"salary"`
	Department string  `db:"department" json:"department"`
}

// ListRoles returns every role with its department name, ordered by id.
func (db *DB) ListRoles(ctx context.Context) ([]Role, error) {
	roles := []Role{}
	err := db.selectRows(ctx, &roles, `
		SELECT r.id, r.title, r.salary, d.name AS department
		FROM role r
		JOIN department d ON r.department_id = d.id
		ORDER BY r.id ASC
	`)
	if err != nil {
		return nil, fail("list roles", err)
	}
	return roles, nil
}

// AddRole inserts a role and returns its id.
func (db *DB) AddRole(ctx context.Context, title string, salary float64, departmentID int64) (int64, error) {
	var id int64
	err := db.get(ctx, &id,
		"INSERT INTO role (title, salary, department_id) VALUES (?, ?, ?) RETURNING id",
		title, salary, departmentID)
	if err != nil {
		return 0, fail("add role", err)
	}
	log.Info().Int64("role_id", id).Str("title", title).Float64("salary", salary).Int64("department_id", departmentID).Msg("Role added")
	return id, nil
}

// DeleteRole removes a role by id.
func (db *DB) DeleteRole(ctx context.Context, id int64) error {
	if err := db.deleteByID(ctx, "role", id); err != nil {
		return err
	}
	log.Info().Int64("role_id", id).Msg("Role deleted")
	return nil
}
