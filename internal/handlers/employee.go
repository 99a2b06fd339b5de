package handlers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"projectmgr/internal/models"
)

// EmployeeRequest is the JSON payload for creating an employee. Salary may be
// sent as a JSON number or string.
type EmployeeRequest struct {
	Name        string          `json:"name"`
	Designation string          `json:"designation"`
	Gender      string          `json:"gender"`
	Salary      decimal.Decimal `json:"salary"`
	ProjectID   int64           `json:"project_id"`
}

// AssignProjectRequest is the JSON payload for moving an employee.
type AssignProjectRequest struct {
	ProjectID int64 `json:"project_id"`
}

// ListEmployees returns every employee.
func (h *Handlers) ListEmployees(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.repo.ListEmployees(r.Context()))
}

// CreateEmployee creates a new employee on an existing project.
func (h *Handlers) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	employee := &models.Employee{
		Name:        strings.TrimSpace(req.Name),
		Designation: req.Designation,
		Gender:      req.Gender,
		Salary:      req.Salary,
		ProjectID:   req.ProjectID,
	}
	if err := employee.Validate(); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.repo.CreateEmployee(r.Context(), employee)
	if err != nil {
		respondMutationError(w, r, err)
		return
	}
	if !ok {
		respondServerError(w, r, "failed to create employee")
		return
	}

	respondJSON(w, r, http.StatusCreated, employee)
}

// DeleteEmployee deletes an employee. Their tasks are left in place.
func (h *Handlers) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid employee id")
		return
	}

	ok, err := h.repo.DeleteEmployee(r.Context(), id)
	if err != nil {
		respondMutationError(w, r, err)
		return
	}
	if !ok {
		respondServerError(w, r, "failed to delete employee")
		return
	}

	respondJSON(w, r, http.StatusOK, Result{ID: id, Message: "employee deleted"})
}

// AssignProject moves an employee to another project.
func (h *Handlers) AssignProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid employee id")
		return
	}

	var req AssignProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProjectID <= 0 {
		respondError(w, r, http.StatusBadRequest, "project_id must be greater than 0")
		return
	}

	ok, err := h.repo.AssignProjectToEmployee(r.Context(), req.ProjectID, id)
	if err != nil {
		respondMutationError(w, r, err)
		return
	}
	if !ok {
		respondServerError(w, r, "failed to assign project")
		return
	}

	respondJSON(w, r, http.StatusOK, Result{ID: id, Message: "project assigned"})
}
