package handlers

import (
	"errors"
	"net/http"
	"strings"

	"projectmgr/internal/models"
)

// ProjectRequest is the JSON payload for creating a project.
type ProjectRequest struct {
	Name        string `json:"project_name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	Status      string `json:"status"`
}

func (p ProjectRequest) toModel() (*models.Project, error) {
	project := &models.Project{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Status:      p.Status,
	}

	if p.StartDate != "" {
		date, err := models.ParseDate(p.StartDate)
		if err != nil {
			return nil, errors.New("start_date must be a date in YYYY-MM-DD form")
		}
		project.StartDate = date
	}

	return project, project.Validate()
}

// ListProjects returns every project.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.repo.ListProjects(r.Context()))
}

// CreateProject creates a new project.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	project, err := req.toModel()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if !h.repo.CreateProject(r.Context(), project) {
		respondServerError(w, r, "failed to create project")
		return
	}

	respondJSON(w, r, http.StatusCreated, project)
}

// DeleteProject deletes a project. Employees and tasks that reference it
// are left in place.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid project id")
		return
	}

	ok, err := h.repo.DeleteProject(r.Context(), id)
	if err != nil {
		respondMutationError(w, r, err)
		return
	}
	if !ok {
		respondServerError(w, r, "failed to delete project")
		return
	}

	respondJSON(w, r, http.StatusOK, Result{ID: id, Message: "project deleted"})
}
