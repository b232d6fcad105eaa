package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
)

// Department is a row of the department table.
type Department struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// DepartmentBudget is the combined salary of a department's employees.
type DepartmentBudget struct {
	Department  string  `db:"department" json:"department"`
	TotalSalary float64 `db:"total_salary" json:"total_salary"`
	Headcount   int64   `db:"headcount" json:"headcount"`
}

// ListDepartments returns every department ordered by id.
func (db *DB) ListDepartments(ctx context.Context) ([]Department, error) {
	departments := []Department{}
	if err := db.selectRows(ctx, &departments, "SELECT id, name FROM department ORDER BY id ASC"); err != nil {
		return nil, fail("list departments", err)
	}
	return departments, nil
}

// AddDepartment inserts a department and returns its id.
func (db *DB) AddDepartment(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := db.get(ctx, &id, "INSERT INTO department (name) VALUES (?) RETURNING id", name); err != nil {
		return 0, fail("add department", err)
	}
	log.Info().Int64("department_id", id).Str("name", name).Msg("Department added")
	return id, nil
}

// DeleteDepartment removes a department by id.
func (db *DB) DeleteDepartment(ctx context.Context, id int64) error {
	if err := db.deleteByID(ctx, "department", id); err != nil {
		return err
	}
	log.Info().Int64("department_id", id).Msg("Department deleted")
	return nil
}

// DepartmentBudget sums the role salaries of everyone employed in the
// department. A department without employees, or an unknown id, yields
// ErrNotFound.
func (db *DB) DepartmentBudget(ctx context.Context, departmentID int64) (*DepartmentBudget, error) {
	budget := &DepartmentBudget{}
	err := db.get(ctx, budget, `
		SELECT d.name AS department, SUM(r.salary) AS total_salary, COUNT(e.id) AS headcount
		FROM employee e
		JOIN role r ON e.role_id = r.id
		JOIN department d ON r.department_id = d.id
		WHERE d.id = ?
		GROUP BY d.id, d.name
	`, departmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fail("get department budget", err)
	}
	return budget, nil
}

// deleteByID is shared by the three delete operations. Table names are
// never taken from input.
func (db *DB) deleteByID(ctx context.Context, table string, id int64) error {
	op := "delete " + table
	result, err := db.exec(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fail(op, err)
	}
	return requireAffected(op, result)
}

func requireAffected(op string, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fail(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
