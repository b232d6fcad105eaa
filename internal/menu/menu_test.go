package menu

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emptrack/emptrack/internal/database"
	"github.com/emptrack/emptrack/internal/prompt"
)

const (
	choiceViewDepartments = iota
	choiceViewRoles
	choiceViewEmployees
	choiceByManager
	choiceByDepartment
	choiceBudget
	choiceAddDepartment
	choiceAddRole
	choiceAddEmployee
	choiceUpdateRole
	choiceUpdateManager
	choiceDeleteDepartment
	choiceDeleteRole
	choiceDeleteEmployee
	choiceExit
)

// scriptedPrompter replays selections and answers. Input re-asks on a
// validation failure the same way the terminal prompter does.
type scriptedPrompter struct {
	selections []int
	answers    []string
	rejected   []string
}

func (p *scriptedPrompter) Select(_ string, _ []string) (int, error) {
	if len(p.selections) == 0 {
		return 0, prompt.ErrAborted
	}
	idx := p.selections[0]
	p.selections = p.selections[1:]
	return idx, nil
}

func (p *scriptedPrompter) Input(_ string, validate func(string) error) (string, error) {
	for len(p.answers) > 0 {
		answer := p.answers[0]
		p.answers = p.answers[1:]
		if err := validate(answer); err != nil {
			p.rejected = append(p.rejected, answer)
			continue
		}
		return answer, nil
	}
	return "", prompt.ErrAborted
}

type addRoleCall struct {
	title        string
	salary       float64
	departmentID int64
}

type addEmployeeCall struct {
	first, last string
	roleID      int64
	managerID   *int64
}

type stubStore struct {
	departments []database.Department
	employees   []database.Employee
	budget      *database.DepartmentBudget
	err         error

	addedDepartments []string
	addedRoles       []addRoleCall
	addedEmployees   []addEmployeeCall
	managerUpdates   map[int64]*int64
	deleted          []int64
}

func (s *stubStore) ListDepartments(context.Context) ([]database.Department, error) {
	return s.departments, s.err
}

func (s *stubStore) ListRoles(context.Context) ([]database.Role, error) {
	return nil, s.err
}

func (s *stubStore) ListEmployees(context.Context) ([]database.Employee, error) {
	return s.employees, s.err
}

func (s *stubStore) ListEmployeesByManager(context.Context, int64) ([]database.Employee, error) {
	return s.employees, s.err
}

func (s *stubStore) ListEmployeesByDepartment(context.Context, int64) ([]database.Employee, error) {
	return s.employees, s.err
}

func (s *stubStore) DepartmentBudget(context.Context, int64) (*database.DepartmentBudget, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.budget, nil
}

func (s *stubStore) AddDepartment(_ context.Context, name string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.addedDepartments = append(s.addedDepartments, name)
	return int64(len(s.addedDepartments)), nil
}

func (s *stubStore) AddRole(_ context.Context, title string, salary float64, departmentID int64) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.addedRoles = append(s.addedRoles, addRoleCall{title, salary, departmentID})
	return int64(len(s.addedRoles)), nil
}

func (s *stubStore) AddEmployee(_ context.Context, first, last string, roleID int64, managerID *int64) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.addedEmployees = append(s.addedEmployees, addEmployeeCall{first, last, roleID, managerID})
	return int64(len(s.addedEmployees)), nil
}

func (s *stubStore) UpdateEmployeeRole(context.Context, int64, int64) error {
	return s.err
}

func (s *stubStore) UpdateEmployeeManager(_ context.Context, employeeID int64, managerID *int64) error {
	if s.err != nil {
		return s.err
	}
	if s.managerUpdates == nil {
		s.managerUpdates = make(map[int64]*int64)
	}
	s.managerUpdates[employeeID] = managerID
	return nil
}

func (s *stubStore) DeleteDepartment(_ context.Context, id int64) error {
	return s.recordDelete(id)
}

func (s *stubStore) DeleteRole(_ context.Context, id int64) error {
	return s.recordDelete(id)
}

func (s *stubStore) DeleteEmployee(_ context.Context, id int64) error {
	return s.recordDelete(id)
}

func (s *stubStore) recordDelete(id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func run(t *testing.T, store *stubStore, p *scriptedPrompter) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, New(store, p, &out).Run(context.Background()))
	return out.String()
}

func TestLabelsOrder(t *testing.T) {
	labels := New(&stubStore{}, &scriptedPrompter{}, &bytes.Buffer{}).Labels()

	require.Len(t, labels, 15)
	assert.Equal(t, "View all departments", labels[choiceViewDepartments])
	assert.Equal(t, "View department budget", labels[choiceBudget])
	assert.Equal(t, "Add a role", labels[choiceAddRole])
	assert.Equal(t, "Delete an employee", labels[choiceDeleteEmployee])
	assert.Equal(t, "Exit", labels[choiceExit])
}

func TestExitSaysGoodbye(t *testing.T) {
	out := run(t, &stubStore{}, &scriptedPrompter{selections: []int{choiceExit}})

	assert.Contains(t, out, "Exiting the Employee Tracker. Goodbye!")
}

func TestAbortEndsLoopQuietly(t *testing.T) {
	store := &stubStore{}
	// Second prompt of Add a role is aborted.
	p := &scriptedPrompter{selections: []int{choiceAddRole}, answers: []string{"Engineer"}}

	out := run(t, store, p)

	assert.Empty(t, store.addedRoles)
	assert.NotContains(t, out, "Goodbye")
}

func TestInvalidDepartmentIDIsReasked(t *testing.T) {
	store := &stubStore{}
	p := &scriptedPrompter{
		selections: []int{choiceAddRole, choiceExit},
		answers:    []string{"Engineer", "120000", "abc", "2"},
	}

	out := run(t, store, p)

	assert.Equal(t, []string{"abc"}, p.rejected)
	require.Len(t, store.addedRoles, 1)
	assert.Equal(t, addRoleCall{title: "Engineer", salary: 120000, departmentID: 2}, store.addedRoles[0])
	assert.Contains(t, out, "Role 'Engineer' added successfully.")
}

func TestInvalidBudgetIDNeverReachesStore(t *testing.T) {
	store := &stubStore{err: errors.New("store must not be called")}
	p := &scriptedPrompter{selections: []int{choiceBudget}, answers: []string{"abc", " "}}

	out := run(t, store, p)

	assert.Equal(t, []string{"abc", " "}, p.rejected)
	assert.NotContains(t, out, "Error")
}

func TestAddDepartmentTrimsAndRejectsBlank(t *testing.T) {
	store := &stubStore{}
	p := &scriptedPrompter{
		selections: []int{choiceAddDepartment, choiceExit},
		answers:    []string{"   ", "  Research "},
	}

	out := run(t, store, p)

	assert.Equal(t, []string{"Research"}, store.addedDepartments)
	assert.Contains(t, out, "Department 'Research' added successfully.")
}

func TestAddEmployeeOptionalManager(t *testing.T) {
	store := &stubStore{}
	p := &scriptedPrompter{
		selections: []int{choiceAddEmployee, choiceAddEmployee, choiceExit},
		answers: []string{
			"Ada", "Lovelace", "3", "",
			"Alan", "Turing", "3", "x", "1",
		},
	}

	run(t, store, p)

	require.Len(t, store.addedEmployees, 2)
	assert.Nil(t, store.addedEmployees[0].managerID)
	require.NotNil(t, store.addedEmployees[1].managerID)
	assert.Equal(t, int64(1), *store.addedEmployees[1].managerID)
	assert.Equal(t, []string{"x"}, p.rejected)
}

func TestUpdateManagerClears(t *testing.T) {
	store := &stubStore{}
	p := &scriptedPrompter{
		selections: []int{choiceUpdateManager, choiceExit},
		answers:    []string{"4", ""},
	}

	out := run(t, store, p)

	managerID, ok := store.managerUpdates[4]
	require.True(t, ok)
	assert.Nil(t, managerID)
	assert.Contains(t, out, "Employee 4 manager updated successfully.")
}

func TestOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		store   *stubStore
		choice  int
		answers []string
		want    []string
		absent  []string
	}{
		{
			name:   "rows",
			store:  &stubStore{departments: []database.Department{{ID: 1, Name: "Engineering"}}},
			choice: choiceViewDepartments,
			want:   []string{"name", "Engineering"},
		},
		{
			name:   "empty read is an empty table",
			store:  &stubStore{},
			choice: choiceViewEmployees,
			want:   []string{"first_name"},
			absent: []string{"No matching", "Error"},
		},
		{
			name:    "budget",
			store:   &stubStore{budget: &database.DepartmentBudget{Department: "Legal", TotalSalary: 440000, Headcount: 2}},
			choice:  choiceBudget,
			answers: []string{"3"},
			want:    []string{"Legal", "440000.00"},
		},
		{
			name:    "budget not found",
			store:   &stubStore{err: database.ErrNotFound},
			choice:  choiceBudget,
			answers: []string{"99"},
			want:    []string{"No matching department with employees found."},
			absent:  []string{"total_salary"},
		},
		{
			name:    "delete not found",
			store:   &stubStore{err: database.ErrNotFound},
			choice:  choiceDeleteRole,
			answers: []string{"42"},
			want:    []string{"No matching role found."},
		},
		{
			name: "store error",
			store: &stubStore{err: &database.StoreError{
				Op:   "add role",
				Kind: database.KindForeignKey,
				Err:  errors.New("violates foreign key constraint"),
			}},
			choice:  choiceAddRole,
			answers: []string{"Engineer", "1", "99"},
			want:    []string{"Error: could not add role (foreign_key)"},
			absent:  []string{"added successfully"},
		},
		{
			name:    "update role not found",
			store:   &stubStore{err: database.ErrNotFound},
			choice:  choiceUpdateRole,
			answers: []string{"7", "1"},
			want:    []string{"No matching employee found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPrompter{selections: []int{tt.choice, choiceExit}, answers: tt.answers}

			out := run(t, tt.store, p)

			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
			// The loop continued to Exit.
			assert.Contains(t, out, "Goodbye!")
		})
	}
}

func TestCanceledContextStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(&stubStore{}, &scriptedPrompter{selections: []int{choiceExit}}, &bytes.Buffer{}).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
