package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/emptrack/emptrack/internal/database"
)

// Health reports whether the store answers a ping.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.PingContext(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Health check failed")
		h.jsonError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, map[string]string{"status": "ok", "version": h.version}, http.StatusOK)
}

// Departments lists all departments.
func (h *Handlers) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.store.ListDepartments(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.jsonResponse(w, departments, http.StatusOK)
}

// DepartmentEmployees lists the employees holding a role in the department.
func (h *Handlers) DepartmentEmployees(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := h.pathID(w, r, "Invalid department ID")
	if !ok {
		return
	}

	employees, err := h.store.ListEmployeesByDepartment(r.Context(), departmentID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.jsonResponse(w, employees, http.StatusOK)
}

// DepartmentBudget returns the salary total of a department.
func (h *Handlers) DepartmentBudget(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := h.pathID(w, r, "Invalid department ID")
	if !ok {
		return
	}

	budget, err := h.store.DepartmentBudget(r.Context(), departmentID)
	if errors.Is(err, database.ErrNotFound) {
		h.jsonError(w, "Department not found or has no employees", http.StatusNotFound)
		return
	}
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.jsonResponse(w, budget, http.StatusOK)
}

// Roles lists all roles with their department.
func (h *Handlers) Roles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.store.ListRoles(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.jsonResponse(w, roles, http.StatusOK)
}

// Employees lists all employees, or the reports of ?manager_id= when given.
func (h *Handlers) Employees(w http.ResponseWriter, r *http.Request) {
	var (
		employees []database.Employee
		err       error
	)

	if raw := r.URL.Query().Get("manager_id"); raw != "" {
		managerID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			h.jsonError(w, "Invalid manager ID", http.StatusBadRequest)
			return
		}
		employees, err = h.store.ListEmployeesByManager(r.Context(), managerID)
	} else {
		employees, err = h.store.ListEmployees(r.Context())
	}

	if err != nil {
		h.storeError(w, err)
		return
	}
	h.jsonResponse(w, employees, http.StatusOK)
}

// Employee returns the raw employee row with its role and manager ids.
func (h *Handlers) Employee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.pathID(w, r, "Invalid employee ID")
	if !ok {
		return
	}

	employee, err := h.store.GetEmployee(r.Context(), employeeID)
	if errors.Is(err, database.ErrNotFound) {
		h.jsonError(w, "Employee not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.jsonResponse(w, employee, http.StatusOK)
}

func (h *Handlers) pathID(w http.ResponseWriter, r *http.Request, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, message, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// storeError reports a failed query. The store has already logged it.
func (h *Handlers) storeError(w http.ResponseWriter, err error) {
	var storeErr *database.StoreError
	if errors.As(err, &storeErr) {
		h.jsonError(w, "failed to "+storeErr.Op, http.StatusInternalServerError)
		return
	}
	log.Error().Err(err).Msg("Request failed")
	h.jsonError(w, "Internal server error", http.StatusInternalServerError)
}
