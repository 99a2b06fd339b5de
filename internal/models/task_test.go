package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskValidation(t *testing.T) {
	tests := []struct {
		name   string
		task   Task
		errMsg string
	}{
		{
			name: "valid task",
			task: Task{Name: "Develop Feature X", ProjectID: 1, EmployeeID: 1, Status: "In Progress"},
		},
		{
			name:   "empty name should fail",
			task:   Task{ProjectID: 1, EmployeeID: 1},
			errMsg: "task_name is required",
		},
		{
			name:   "missing project should fail",
			task:   Task{Name: "Task", EmployeeID: 1},
			errMsg: "project_id must be greater than 0",
		},
		{
			name:   "missing employee should fail",
			task:   Task{Name: "Task", ProjectID: 1},
			errMsg: "employee_id must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestTaskIsDone(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Completed", true},
		{" done ", true},
		{"In Progress", false},
		{"", false},
	}

	for _, tt := range tests {
		task := Task{Status: tt.status}
		assert.Equal(t, tt.want, task.IsDone(), "status %q", tt.status)
	}
}
