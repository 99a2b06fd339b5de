package store

import (
	"errors"
	"fmt"
)

// Entity names a kind of row a mutation may reference.
type Entity string

const (
	EntityProject  Entity = "project"
	EntityEmployee Entity = "employee"
)

var (
	// ErrProjectNotFound matches any *NotFoundError for a project.
	ErrProjectNotFound = errors.New("project not found")
	// ErrEmployeeNotFound matches any *NotFoundError for an employee.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// NotFoundError reports that a referenced row did not exist when a mutation
// required it. Nothing was written.
type NotFoundError struct {
	Entity Entity
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// Is lets errors.Is match the per-entity sentinels.
func (e *NotFoundError) Is(target error) bool {
	switch target {
	case ErrProjectNotFound:
		return e.Entity == EntityProject
	case ErrEmployeeNotFound:
		return e.Entity == EntityEmployee
	}
	return false
}

// IsNotFound reports whether err carries a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
