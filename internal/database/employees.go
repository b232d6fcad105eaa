package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
)

// Employee is an employee joined with role, department and manager name.
// Manager is nil for employees without a manager.
type Employee struct {
	ID         int64   `db:"id" json:"id"`
	FirstName  string  `db:"first_name" json:"first_name"`
	LastName   string  `db:"last_name" json:"last_name"`
	JobTitle   string  `db:"job_title" json:"job_title"`
	Department string  `db:"department" json:"department"`
	Salary     float64 `db:"salary" json:"salary"`
	Manager    *string `db:"manager" json:"manager"`
}

// EmployeeRecord is a raw row of the employee table.
type EmployeeRecord struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    int64  `json:"role_id"`
	ManagerID *int64 `json:"manager_id"`
}

// The manager's full name is NULL when the left join finds no manager.
const employeeSelect = `
	SELECT
		e.id,
		e.first_name,
		e.last_name,
		r.title AS job_title,
		d.name AS department,
		r.salary,
		m.first_name || ' ' || m.last_name AS manager
	FROM employee e
	JOIN role r ON e.role_id = r.id
	JOIN department d ON r.department_id = d.id
	LEFT JOIN employee m ON e.manager_id = m.id
`

// ListEmployees returns every employee ordered by id.
func (db *DB) ListEmployees(ctx context.Context) ([]Employee, error) {
	return db.listEmployees(ctx, "list employees", "")
}

// ListEmployeesByManager returns the direct reports of managerID ordered by id.
func (db *DB) ListEmployeesByManager(ctx context.Context, managerID int64) ([]Employee, error) {
	return db.listEmployees(ctx, "list employees by manager", "WHERE e.manager_id = ?", managerID)
}

// ListEmployeesByDepartment returns the employees whose role belongs to
// departmentID, ordered by id.
func (db *DB) ListEmployeesByDepartment(ctx context.Context, departmentID int64) ([]Employee, error) {
	return db.listEmployees(ctx, "list employees by department", "WHERE r.department_id = ?", departmentID)
}

func (db *DB) listEmployees(ctx context.Context, op, where string, args ...any) ([]Employee, error) {
	employees := []Employee{}
	if err := db.selectRows(ctx, &employees, employeeSelect+where+" ORDER BY e.id ASC", args...); err != nil {
		return nil, fail(op, err)
	}
	return employees, nil
}

// GetEmployee retrieves the raw employee row by id.
func (db *DB) GetEmployee(ctx context.Context, id int64) (*EmployeeRecord, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	employee := &EmployeeRecord{}
	var managerID sql.NullInt64
	err := db.QueryRowContext(ctx, db.Rebind(`
		SELECT id, first_name, last_name, role_id, manager_id
		FROM employee WHERE id = ?
	`), id).Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.RoleID, &managerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fail("get employee", err)
	}
	employee.ManagerID = nullInt64ToPtr(managerID)
	return employee, nil
}

// AddEmployee inserts an employee and returns its id. managerID may be nil.
func (db *DB) AddEmployee(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (int64, error) {
	var id int64
	err := db.get(ctx, &id,
		"INSERT INTO employee (first_name, last_name, role_id, manager_id) VALUES (?, ?, ?, ?) RETURNING id",
		firstName, lastName, roleID, ptrToNullInt64(managerID))
	if err != nil {
		return 0, fail("add employee", err)
	}
	log.Info().Int64("employee_id", id).Str("first_name", firstName).Str("last_name", lastName).Msg("Employee added")
	return id, nil
}

// UpdateEmployeeRole sets the role of one employee.
func (db *DB) UpdateEmployeeRole(ctx context.Context, employeeID, roleID int64) error {
	const op = "update employee role"
	result, err := db.exec(ctx, "UPDATE employee SET role_id = ? WHERE id = ?", roleID, employeeID)
	if err != nil {
		return fail(op, err)
	}
	if err := requireAffected(op, result); err != nil {
		return err
	}
	log.Info().Int64("employee_id", employeeID).Int64("role_id", roleID).Msg("Employee role updated")
	return nil
}

// UpdateEmployeeManager sets or clears (nil) the manager of one employee.
func (db *DB) UpdateEmployeeManager(ctx context.Context, employeeID int64, managerID *int64) error {
	const op = "update employee manager"
	result, err := db.exec(ctx, "UPDATE employee SET manager_id = ? WHERE id = ?", ptrToNullInt64(managerID), employeeID)
	if err != nil {
		return fail(op, err)
	}
	if err := requireAffected(op, result); err != nil {
		return err
	}
	event := log.Info().Int64("employee_id", employeeID)
	if managerID != nil {
		event = event.Int64("manager_id", *managerID)
	}
	event.Msg("Employee manager updated")
	return nil
}

// DeleteEmployee removes an employee by id.
func (db *DB) DeleteEmployee(ctx context.Context, id int64) error {
	if err := db.deleteByID(ctx, "employee", id); err != nil {
		return err
	}
	log.Info().Int64("employee_id", id).Msg("Employee deleted")
	return nil
}
