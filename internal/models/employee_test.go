package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeValidation(t *testing.T) {
	tests := []struct {
		name     string
		employee Employee
		errMsg   string
	}{
		{
			name:     "valid employee",
			employee: Employee{Name: "John", Designation: "Developer", Gender: "Male", Salary: decimal.NewFromInt(5000), ProjectID: 1},
		},
		{
			name:     "zero salary is allowed",
			employee: Employee{Name: "Intern", ProjectID: 1},
		},
		{
			name:     "empty name should fail",
			employee: Employee{Name: " ", ProjectID: 1},
			errMsg:   "name is required",
		},
		{
			name:     "negative salary should fail",
			employee: Employee{Name: "John", Salary: decimal.NewFromInt(-1), ProjectID: 1},
			errMsg:   "salary must not be negative",
		},
		{
			name:     "missing project should fail",
			employee: Employee{Name: "John"},
			errMsg:   "project_id must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.employee.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestEmployeeSalaryString(t *testing.T) {
	e := Employee{Salary: decimal.RequireFromString("5000.5")}
	assert.Equal(t, "5000.50", e.SalaryString())
}
