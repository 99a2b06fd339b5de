package models

import (
	"errors"
	"strings"
)

// Task is a piece of work owned by one employee within one project.
type Task struct {
	ID         int64  `json:"task_id" yaml:"task_id"`
	Name       string `json:"task_name" yaml:"task_name" validate:"max=100"`
	ProjectID  int64  `json:"project_id" yaml:"project_id" validate:"gt=0"`
	EmployeeID int64  `json:"employee_id" yaml:"employee_id" validate:"gt=0"`
	Status     string `json:"status" yaml:"status" validate:"max=50"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("task_name is required")
	}

	return validateStruct(t)
}

// IsDone reports whether the free-text status reads as finished.
func (t *Task) IsDone() bool {
	switch strings.ToLower(strings.TrimSpace(t.Status)) {
	case "done", "completed", "complete":
		return true
	default:
		return false
	}
}
