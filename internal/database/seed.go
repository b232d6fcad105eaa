package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type seedRole struct {
	title      string
	salary     float64
	department string
}

type seedEmployee struct {
	firstName string
	lastName  string
	role      string
	manager   string // "first last" of an earlier entry, or ""
}

var (
	seedDepartments = []string{"Engineering", "Finance", "Legal", "Sales"}

	seedRoles = []seedRole{
		{"Lead Engineer", 150000, "Engineering"},
		{"Software Engineer", 120000, "Engineering"},
		{"Account Manager", 160000, "Finance"},
		{"Accountant", 125000, "Finance"},
		{"Legal Team Lead", 250000, "Legal"},
		{"Lawyer", 190000, "Legal"},
		{"Sales Lead", 100000, "Sales"},
		{"Salesperson", 80000, "Sales"},
	}

	seedEmployees = []seedEmployee{
		{"John", "Doe", "Sales Lead", ""},
		{"Mike", "Chan", "Salesperson", "John Doe"},
		{"Ashley", "Rodriguez", "Lead Engineer", ""},
		{"Kevin", "Tupik", "Software Engineer", "Ashley Rodriguez"},
		{"Kunal", "Singh", "Account Manager", ""},
		{"Malia", "Brown", "Accountant", "Kunal Singh"},
		{"Sarah", "Lourd", "Legal Team Lead", ""},
		{"Tom", "Allen", "Lawyer", "Sarah Lourd"},
	}
)

// Seed loads a sample organisation. It only runs against an empty
// department table and reports whether rows were inserted.
func (db *DB) Seed(ctx context.Context) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM department"); err != nil {
		return false, fmt.Errorf("failed to check departments: %w", err)
	}
	if count > 0 {
		log.Info().Int("departments", count).Msg("Store already has data, skipping seed")
		return false, nil
	}

	err := db.Transaction(ctx, func(tx *sqlx.Tx) error {
		departmentIDs := make(map[string]int64, len(seedDepartments))
		for _, name := range seedDepartments {
			var id int64
			if err := tx.GetContext(ctx, &id, tx.Rebind("INSERT INTO department (name) VALUES (?) RETURNING id"), name); err != nil {
				return fmt.Errorf("failed to seed department %q: %w", name, err)
			}
			departmentIDs[name] = id
		}

		roleIDs := make(map[string]int64, len(seedRoles))
		for _, r := range seedRoles {
			var id int64
			if err := tx.GetContext(ctx, &id,
				tx.Rebind("INSERT INTO role (title, salary, department_id) VALUES (?, ?, ?) RETURNING id"),
				r.title, r.salary, departmentIDs[r.department]); err != nil {
				return fmt.Errorf("failed to seed role %q: %w", r.title, err)
			}
			roleIDs[r.title] = id
		}

		employeeIDs := make(map[string]int64, len(seedEmployees))
		for _, e := range seedEmployees {
			var managerID *int64
			if e.manager != "" {
				id, ok := employeeIDs[e.manager]
				if !ok {
					return fmt.Errorf("seed manager %q must precede %s %s", e.manager, e.firstName, e.lastName)
				}
				managerID = &id
			}

			var id int64
			if err := tx.GetContext(ctx, &id,
				tx.Rebind("INSERT INTO employee (first_name, last_name, role_id, manager_id) VALUES (?, ?, ?, ?) RETURNING id"),
				e.firstName, e.lastName, roleIDs[e.role], ptrToNullInt64(managerID)); err != nil {
				return fmt.Errorf("failed to seed employee %s %s: %w", e.firstName, e.lastName, err)
			}
			employeeIDs[e.firstName+" "+e.lastName] = id
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().
		Int("departments", len(seedDepartments)).
		Int("roles", len(seedRoles)).
		Int("employees", len(seedEmployees)).
		Msg("Seed data loaded")
	return true, nil
}
