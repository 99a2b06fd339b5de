package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectValidation(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		project Project
		errMsg  string
	}{
		{
			name:    "valid project",
			project: Project{Name: "Project Alpha", Description: "New software project", StartDate: start, Status: "Active"},
		},
		{
			name:    "empty name should fail",
			project: Project{Name: "", StartDate: start},
			errMsg:  "project_name is required",
		},
		{
			name:    "whitespace name should fail",
			project: Project{Name: "   ", StartDate: start},
			errMsg:  "project_name is required",
		},
		{
			name:    "missing start date should fail",
			project: Project{Name: "Alpha"},
			errMsg:  "start_date is required",
		},
		{
			name:    "long name should fail",
			project: Project{Name: strings.Repeat("a", 101), StartDate: start},
			errMsg:  "project_name must be at most 100 characters",
		},
		{
			name:    "empty status is allowed",
			project: Project{Name: "Alpha", StartDate: start},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestProjectStartDateString(t *testing.T) {
	p := Project{}
	assert.Equal(t, "", p.StartDateString())

	p.StartDate = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15", p.StartDateString())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}
