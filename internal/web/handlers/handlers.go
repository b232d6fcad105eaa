package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/emptrack/emptrack/internal/database"
)

// Store is the read side of the query catalog.
type Store interface {
	PingContext(ctx context.Context) error
	ListDepartments(ctx context.Context) ([]database.Department, error)
	ListRoles(ctx context.Context) ([]database.Role, error)
	ListEmployees(ctx context.Context) ([]database.Employee, error)
	ListEmployeesByManager(ctx context.Context, managerID int64) ([]database.Employee, error)
	ListEmployeesByDepartment(ctx context.Context, departmentID int64) ([]database.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*database.EmployeeRecord, error)
	DepartmentBudget(ctx context.Context, departmentID int64) (*database.DepartmentBudget, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	store   Store
	version string
}

// New creates a new Handlers instance
func New(store Store, version string) *Handlers {
	return &Handlers{
		store:   store,
		version: version,
	}
}

// jsonResponse sends v as a JSON body with the given status
func (h *Handlers) jsonResponse(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	h.jsonResponse(w, map[string]string{"error": message}, status)
}
