package models

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for project start dates.
const DateLayout = "2006-01-02"

// Project is a unit of work that employees and tasks are attached to.
type Project struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"project_name" yaml:"project_name" validate:"max=100"`
	Description string    `json:"description" yaml:"description" validate:"max=500"`
	StartDate   time.Time `json:"start_date" yaml:"start_date" validate:"required"`
	Status      string    `json:"status" yaml:"status" validate:"max=50"`
}

// Validate checks that the project has valid field values.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("project_name is required")
	}

	return validateStruct(p)
}

// StartDateString returns the start date in YYYY-MM-DD form, or an empty
// string when unset.
func (p *Project) StartDateString() string {
	if p.StartDate.IsZero() {
		return ""
	}
	return p.StartDate.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
