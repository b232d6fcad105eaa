package menu

import (
	"context"
	"fmt"

	"github.com/emptrack/emptrack/internal/input"
	"github.com/emptrack/emptrack/internal/render"
)

func (c *Controller) buildChoices() []choice {
	return []choice{
		{label: "View all departments", run: c.viewDepartments},
		{label: "View all roles", run: c.viewRoles},
		{label: "View all employees", run: c.viewEmployees},
		{label: "View employees by manager", run: c.viewEmployeesByManager},
		{label: "View employees by department", run: c.viewEmployeesByDepartment},
		{
			label:    "View department budget",
			notFound: "No matching department with employees found.",
			run:      c.viewDepartmentBudget,
		},
		{label: "Add a department", run: c.addDepartment},
		{label: "Add a role", run: c.addRole},
		{label: "Add an employee", run: c.addEmployee},
		{
			label:    "Update an employee role",
			notFound: "No matching employee found.",
			run:      c.updateEmployeeRole,
		},
		{
			label:    "Update an employee manager",
			notFound: "No matching employee found.",
			run:      c.updateEmployeeManager,
		},
		{
			label:    "Delete a department",
			notFound: "No matching department found.",
			run:      c.deleteDepartment,
		},
		{
			label:    "Delete a role",
			notFound: "No matching role found.",
			run:      c.deleteRole,
		},
		{
			label:    "Delete an employee",
			notFound: "No matching employee found.",
			run:      c.deleteEmployee,
		},
	}
}

func (c *Controller) viewDepartments(ctx context.Context) error {
	departments, err := c.store.ListDepartments(ctx)
	if err != nil {
		return err
	}
	render.Departments(c.out, departments)
	return nil
}

func (c *Controller) viewRoles(ctx context.Context) error {
	roles, err := c.store.ListRoles(ctx)
	if err != nil {
		return err
	}
	render.Roles(c.out, roles)
	return nil
}

func (c *Controller) viewEmployees(ctx context.Context) error {
	employees, err := c.store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	render.Employees(c.out, employees)
	return nil
}

func (c *Controller) viewEmployeesByManager(ctx context.Context) error {
	managerID, err := ask(c.prompter, "Enter the manager ID:", input.Int("manager ID"))
	if err != nil {
		return err
	}
	employees, err := c.store.ListEmployeesByManager(ctx, managerID)
	if err != nil {
		return err
	}
	render.Employees(c.out, employees)
	return nil
}

func (c *Controller) viewEmployeesByDepartment(ctx context.Context) error {
	departmentID, err := ask(c.prompter, "Enter the department ID:", input.Int("department ID"))
	if err != nil {
		return err
	}
	employees, err := c.store.ListEmployeesByDepartment(ctx, departmentID)
	if err != nil {
		return err
	}
	render.Employees(c.out, employees)
	return nil
}

func (c *Controller) viewDepartmentBudget(ctx context.Context) error {
	departmentID, err := ask(c.prompter, "Enter the department ID:", input.Int("department ID"))
	if err != nil {
		return err
	}
	budget, err := c.store.DepartmentBudget(ctx, departmentID)
	if err != nil {
		return err
	}
	render.Budget(c.out, budget)
	return nil
}

func (c *Controller) addDepartment(ctx context.Context) error {
	name, err := ask(c.prompter, "Enter the name of the new department:", input.NonEmpty("Department name"))
	if err != nil {
		return err
	}
	if _, err := c.store.AddDepartment(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Department '%s' added successfully.\n", name)
	return nil
}

func (c *Controller) addRole(ctx context.Context) error {
	title, err := ask(c.prompter, "Enter the name of the new role:", input.NonEmpty("Role name"))
	if err != nil {
		return err
	}
	salary, err := ask(c.prompter, "Enter the salary for this role:", input.Float("salary"))
	if err != nil {
		return err
	}
	departmentID, err := ask(c.prompter, "Enter the department ID for this role:", input.Int("department ID"))
	if err != nil {
		return err
	}
	if _, err := c.store.AddRole(ctx, title, salary, departmentID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Role '%s' added successfully.\n", title)
	return nil
}

func (c *Controller) addEmployee(ctx context.Context) error {
	firstName, err := ask(c.prompter, "Enter the employee's first name:", input.NonEmpty("First name"))
	if err != nil {
		return err
	}
	lastName, err := ask(c.prompter, "Enter the employee's last name:", input.NonEmpty("Last name"))
	if err != nil {
		return err
	}
	roleID, err := ask(c.prompter, "Enter the role ID for this employee:", input.Int("role ID"))
	if err != nil {
		return err
	}
	managerID, err := ask(c.prompter,
		"Enter the manager ID for this employee (or press Enter for none):",
		input.OptionalInt("manager ID"))
	if err != nil {
		return err
	}
	if _, err := c.store.AddEmployee(ctx, firstName, lastName, roleID, managerID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Employee '%s %s' added successfully.\n", firstName, lastName)
	return nil
}

func (c *Controller) updateEmployeeRole(ctx context.Context) error {
	employeeID, err := ask(c.prompter, "Enter the employee ID you want to update:", input.Int("employee ID"))
	if err != nil {
		return err
	}
	roleID, err := ask(c.prompter, "Enter the new role ID for this employee:", input.Int("role ID"))
	if err != nil {
		return err
	}
	if err := c.store.UpdateEmployeeRole(ctx, employeeID, roleID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Employee %d role updated successfully.\n", employeeID)
	return nil
}

func (c *Controller) updateEmployeeManager(ctx context.Context) error {
	employeeID, err := ask(c.prompter, "Enter the employee ID you want to update:", input.Int("employee ID"))
	if err != nil {
		return err
	}
	managerID, err := ask(c.prompter,
		"Enter the new manager ID for this employee (or press Enter for none):",
		input.OptionalInt("manager ID"))
	if err != nil {
		return err
	}
	if err := c.store.UpdateEmployeeManager(ctx, employeeID, managerID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Employee %d manager updated successfully.\n", employeeID)
	return nil
}

func (c *Controller) deleteDepartment(ctx context.Context) error {
	id, err := ask(c.prompter, "Enter the department ID to delete:", input.Int("department ID"))
	if err != nil {
		return err
	}
	if err := c.store.DeleteDepartment(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Department %d deleted successfully.\n", id)
	return nil
}

func (c *Controller) deleteRole(ctx context.Context) error {
	id, err := ask(c.prompter, "Enter the role ID to delete:", input.Int("role ID"))
	if err != nil {
		return err
	}
	if err := c.store.DeleteRole(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Role %d deleted successfully.\n", id)
	return nil
}

func (c *Controller) deleteEmployee(ctx context.Context) error {
	id, err := ask(c.prompter, "Enter the employee ID to delete:", input.Int("employee ID"))
	if err != nil {
		return err
	}
	if err := c.store.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Employee %d deleted successfully.\n", id)
	return nil
}
