package store

import (
	"context"

	"projectmgr/internal/models"
)

// Repository defines the record-management operations over projects,
// employees and tasks.
//
// Mutations that introduce or change a cross-entity reference check the
// referenced rows first and return a *NotFoundError when one is missing.
// Any other store failure is reported as a false result and logged. Reads
// never fail: a store failure yields an empty slice.
type Repository interface {
	// Project operations
	CreateProject(ctx context.Context, project *models.Project) bool
	DeleteProject(ctx context.Context, projectID int64) (bool, error)
	ListProjects(ctx context.Context) []models.Project
	ProjectExists(ctx context.Context, projectID int64) bool

	// Employee operations
	CreateEmployee(ctx context.Context, employee *models.Employee) (bool, error)
	AssignProjectToEmployee(ctx context.Context, projectID, employeeID int64) (bool, error)
	DeleteEmployee(ctx context.Context, employeeID int64) (bool, error)
	ListEmployees(ctx context.Context) []models.Employee
	EmployeeExists(ctx context.Context, employeeID int64) bool

	// Task operations
	CreateTask(ctx context.Context, task *models.Task) (bool, error)
	AssignTaskToEmployee(ctx context.Context, taskID, projectID, employeeID int64) (bool, error)
	ListTasks(ctx context.Context) []models.Task
	ListTasksFor(ctx context.Context, employeeID, projectID int64) []models.Task

	// Lifecycle
	Close() error
}
