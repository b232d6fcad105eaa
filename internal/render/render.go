// Package render prints query results as text tables.
package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/emptrack/emptrack/internal/database"
)

// Null is printed for absent values.
const Null = "null"

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// Departments renders id and name.
func Departments(w io.Writer, departments []database.Department) {
	table := newTable(w, "id", "name")
	for _, d := range departments {
		table.Append([]string{id(d.ID), d.Name})
	}
	table.Render()
}

// Roles renders roles with their department.
func Roles(w io.Writer, roles []database.Role) {
	table := newTable(w, "id", "title", "salary", "department")
	for _, r := range roles {
		table.Append([]string{id(r.ID), r.Title, Money(r.Salary), r.Department})
	}
	table.Render()
}

// Employees renders employees with job, department, salary and manager.
func Employees(w io.Writer, employees []database.Employee) {
	table := newTable(w, "id", "first_name", "last_name", "job_title", "department", "salary", "manager")
	for _, e := range employees {
		manager := Null
		if e.Manager != nil {
			manager = *e.Manager
		}
		table.Append([]string{id(e.ID), e.FirstName, e.LastName, e.JobTitle, e.Department, Money(e.Salary), manager})
	}
	table.Render()
}

// Budget renders a single department budget row.
func Budget(w io.Writer, budget *database.DepartmentBudget) {
	table := newTable(w, "department", "employees", "total_salary")
	table.Append([]string{budget.Department, strconv.FormatInt(budget.Headcount, 10), Money(budget.TotalSalary)})
	table.Render()
}

// Money formats a salary with two decimals.
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
