package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"projectmgr/internal/models"
)

// TaskRequest is the JSON payload for creating a task.
type TaskRequest struct {
	Name       string `json:"task_name"`
	ProjectID  int64  `json:"project_id"`
	EmployeeID int64  `json:"employee_id"`
	Status     string `json:"status"`
}

// AssignTaskRequest is the JSON payload for handing a task to an employee.
// The task must belong to ProjectID.
type AssignTaskRequest struct {
	ProjectID  int64 `json:"project_id"`
	EmployeeID int64 `json:"employee_id"`
}

// ListTasks returns the whole task table, or with both employee_id and
// project_id set, the tasks that employee owns within that project.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	empParam, projParam := q.Get("employee_id"), q.Get("project_id")

	if empParam == "" && projParam == "" {
		respondJSON(w, r, http.StatusOK, h.repo.ListTasks(r.Context()))
		return
	}

	employeeID, err := parseQueryID(empParam, "employee_id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	projectID, err := parseQueryID(projParam, "project_id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, r, http.StatusOK, h.repo.ListTasksFor(r.Context(), employeeID, projectID))
}

func parseQueryID(v, name string) (int64, error) {
	if v == "" {
		return 0, fmt.Errorf("%s is required when filtering tasks", name)
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// CreateTask creates a new task for an existing employee and project.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task := &models.Task{
		Name:       strings.TrimSpace(req.Name),
		ProjectID:  req.ProjectID,
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
	}
	if err := task.Validate(); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.repo.CreateTask(r.Context(), task)
	if err != nil {
		respondMutationError(w, r, err)
		return
	}
	if !ok {
		respondServerError(w, r, "failed to create task")
		return
	}

	respondJSON(w, r, http.StatusCreated, task)
}

// AssignTask hands a task to another employee. The store answers false both
// when the task is not in the given project and when the update itself
// fails, so either case is reported as 404.
func (h *Handlers) AssignTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid task id")
		return
	}

	var req AssignTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProjectID <= 0 || req.EmployeeID <= 0 {
		respondError(w, r, http.StatusBadRequest, "project_id and employee_id must be greater than 0")
		return
	}

	ok, err := h.repo.AssignTaskToEmployee(r.Context(), id, req.ProjectID, req.EmployeeID)
	if err != nil {
		respondMutationError(w, r, err)
		return
	}
	if !ok {
		respondError(w, r, http.StatusNotFound, fmt.Sprintf("task %d not found in project %d or not updated", id, req.ProjectID))
		return
	}

	respondJSON(w, r, http.StatusOK, Result{ID: id, Message: "task assigned"})
}
