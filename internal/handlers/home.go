package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"projectmgr/internal/models"
)

// ProjectOverview is a project together with the employees and tasks that
// currently reference it.
type ProjectOverview struct {
	models.Project
	Employees []models.Employee `json:"employees"`
	Tasks     []models.Task     `json:"tasks"`
	DoneTasks int               `json:"done_tasks"`
}

// OverviewData is the body of GET /api/overview. Employees and tasks whose
// project has been deleted are listed separately.
type OverviewData struct {
	Projects          []ProjectOverview `json:"projects"`
	OrphanedEmployees []models.Employee `json:"orphaned_employees"`
	OrphanedTasks     []models.Task     `json:"orphaned_tasks"`
}

// Overview returns every project with its employees and tasks, ordered by
// start date. Optional query parameters: status filters projects by status
// (case-insensitive), hide_done drops finished tasks.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statusFilter := strings.TrimSpace(r.URL.Query().Get("status"))

	hideDone := false
	if v := r.URL.Query().Get("hide_done"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid hide_done")
			return
		}
		hideDone = b
	}

	projects := h.repo.ListProjects(ctx)
	employees := h.repo.ListEmployees(ctx)
	tasks := h.repo.ListTasks(ctx)

	byID := make(map[int64]*ProjectOverview, len(projects))
	known := make(map[int64]bool, len(projects))
	overviews := make([]ProjectOverview, 0, len(projects))
	for _, p := range projects {
		known[p.ID] = true
		if statusFilter != "" && !strings.EqualFold(p.Status, statusFilter) {
			continue
		}
		overviews = append(overviews, ProjectOverview{
			Project:   p,
			Employees: []models.Employee{},
			Tasks:     []models.Task{},
		})
	}
	for i := range overviews {
		byID[overviews[i].ID] = &overviews[i]
	}

	data := OverviewData{
		OrphanedEmployees: []models.Employee{},
		OrphanedTasks:     []models.Task{},
	}

	for _, e := range employees {
		if !known[e.ProjectID] {
			data.OrphanedEmployees = append(data.OrphanedEmployees, e)
			continue
		}
		if po, ok := byID[e.ProjectID]; ok {
			po.Employees = append(po.Employees, e)
		}
	}

	for _, t := range tasks {
		if !known[t.ProjectID] {
			data.OrphanedTasks = append(data.OrphanedTasks, t)
			continue
		}
		po, ok := byID[t.ProjectID]
		if !ok {
			continue
		}
		if t.IsDone() {
			po.DoneTasks++
			if hideDone {
				continue
			}
		}
		po.Tasks = append(po.Tasks, t)
	}

	sort.SliceStable(overviews, func(i, j int) bool {
		if !overviews[i].StartDate.Equal(overviews[j].StartDate) {
			return overviews[i].StartDate.Before(overviews[j].StartDate)
		}
		return overviews[i].ID < overviews[j].ID
	})
	data.Projects = overviews

	if n := len(data.OrphanedEmployees) + len(data.OrphanedTasks); n > 0 {
		h.log.Debug().Int("orphans", n).Msg("overview includes rows whose project was deleted")
	}

	respondJSON(w, r, http.StatusOK, data)
}
