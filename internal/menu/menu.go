// Package menu drives the interactive employee tracker.
//
// The controller has a single state, awaiting a selection. Each choice
// collects validated input, runs one store operation and renders the
// outcome, then control returns to the selection prompt until Exit.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/emptrack/emptrack/internal/database"
	"github.com/emptrack/emptrack/internal/input"
	"github.com/emptrack/emptrack/internal/prompt"
)

// Store is the query catalog the menu dispatches to.
type Store interface {
	ListDepartments(ctx context.Context) ([]database.Department, error)
	ListRoles(ctx context.Context) ([]database.Role, error)
	ListEmployees(ctx context.Context) ([]database.Employee, error)
	ListEmployeesByManager(ctx context.Context, managerID int64) ([]database.Employee, error)
	ListEmployeesByDepartment(ctx context.Context, departmentID int64) ([]database.Employee, error)
	DepartmentBudget(ctx context.Context, departmentID int64) (*database.DepartmentBudget, error)
	AddDepartment(ctx context.Context, name string) (int64, error)
	AddRole(ctx context.Context, title string, salary float64, departmentID int64) (int64, error)
	AddEmployee(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (int64, error)
	UpdateEmployeeRole(ctx context.Context, employeeID, roleID int64) error
	UpdateEmployeeManager(ctx context.Context, employeeID int64, managerID *int64) error
	DeleteDepartment(ctx context.Context, id int64) error
	DeleteRole(ctx context.Context, id int64) error
	DeleteEmployee(ctx context.Context, id int64) error
}

// Prompter collects operator input. Input must keep asking until validate
// accepts the value. Both methods return prompt.ErrAborted when the
// operator gives up.
type Prompter interface {
	Select(label string, items []string) (int, error)
	Input(label string, validate func(string) error) (string, error)
}

const selectLabel = "What would you like to do?"

// Controller is the interactive menu loop.
type Controller struct {
	store    Store
	prompter Prompter
	out      io.Writer
	choices  []choice
}

type choice struct {
	label string
	// notFound is shown when the store reports ErrNotFound.
	notFound string
	run      func(ctx context.Context) error
}

// New creates a controller writing results to out.
func New(store Store, prompter Prompter, out io.Writer) *Controller {
	c := &Controller{
		store:    store,
		prompter: prompter,
		out:      out,
	}
	c.choices = c.buildChoices()
	return c
}

// Labels returns the menu entries in display order, Exit last.
func (c *Controller) Labels() []string {
	labels := make([]string, 0, len(c.choices)+1)
	for _, ch := range c.choices {
		labels = append(labels, ch.label)
	}
	return append(labels, exitLabel)
}

const exitLabel = "Exit"

// Run loops until Exit is chosen or the operator aborts a prompt. Store and
// validation failures are reported and the loop continues.
func (c *Controller) Run(ctx context.Context) error {
	labels := c.Labels()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx, err := c.prompter.Select(selectLabel, labels)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				log.Info().Msg("Menu aborted by operator")
				return nil
			}
			return fmt.Errorf("failed to read menu selection: %w", err)
		}

		if idx < 0 || idx >= len(c.choices) {
			fmt.Fprintln(c.out, "Exiting the Employee Tracker. Goodbye!")
			return nil
		}

		ch := c.choices[idx]
		log.Debug().Str("choice", ch.label).Msg("Menu selection")
		if err := ch.run(ctx); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				log.Info().Str("choice", ch.label).Msg("Menu aborted by operator")
				return nil
			}
			c.report(ch, err)
		}
	}
}

// report renders a failed choice. Not found and store failures read
// differently so an empty result is never mistaken for an error.
func (c *Controller) report(ch choice, err error) {
	var storeErr *database.StoreError
	switch {
	case errors.Is(err, database.ErrNotFound):
		notice := ch.notFound
		if notice == "" {
			notice = "No matching rows found."
		}
		fmt.Fprintln(c.out, notice)
	case errors.As(err, &storeErr):
		fmt.Fprintf(c.out, "Error: could not %s (%s): %v\n", storeErr.Op, storeErr.Kind, storeErr.Err)
	default:
		log.Warn().Err(err).Str("choice", ch.label).Msg("Menu action failed")
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

// ask prompts for one field and returns the validated value.
func ask[T any](p Prompter, label string, v input.Validator[T]) (T, error) {
	raw, err := p.Input(label, input.Check(v))
	if err != nil {
		var zero T
		return zero, err
	}
	return v(raw)
}
