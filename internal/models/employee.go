package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Employee is a person assigned to exactly one project.
type Employee struct {
	ID          int64           `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name" validate:"max=100"`
	Designation string          `json:"designation" yaml:"designation" validate:"max=100"`
	Gender      string          `json:"gender" yaml:"gender" validate:"max=20"`
	Salary      decimal.Decimal `json:"salary" yaml:"salary"`
	ProjectID   int64           `json:"project_id" yaml:"project_id" validate:"gt=0"`
}

// Validate checks that the employee has valid field values.
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("name is required")
	}

	if e.Salary.IsNegative() {
		return errors.New("salary must not be negative")
	}

	return validateStruct(e)
}

// SalaryString formats the salary with two decimal places.
func (e *Employee) SalaryString() string {
	return e.Salary.StringFixed(2)
}
