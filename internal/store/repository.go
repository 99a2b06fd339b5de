package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"projectmgr/internal/models"
)

// SQLRepository implements Repository over database/sql. It keeps no state
// besides the connection pool: every call reads or writes through to the
// store.
type SQLRepository struct {
	db      *sql.DB
	dialect dialect
	log     zerolog.Logger
}

var _ Repository = (*SQLRepository)(nil)

// queryer is satisfied by both *sql.Conn and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// withConn runs fn on a connection held for the duration of the call. The
// connection goes back to the pool on every exit path.
func (r *SQLRepository) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// inTx runs a mutation and its existence checks in one transaction on one
// connection. A *NotFoundError from fn is returned to the caller; any other
// error is logged and reported as a plain false.
func (r *SQLRepository) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) (bool, error)) (bool, error) {
	var (
		ok    bool
		txErr error
	)

	err := r.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		ok, txErr = fn(tx)
		if txErr != nil || !ok {
			return nil
		}

		if err := tx.Commit(); err != nil {
			ok = false
			return fmt.Errorf("failed to commit: %w", err)
		}
		return nil
	})

	switch {
	case err != nil:
		r.storeFailure(op, err)
		return false, nil
	case IsNotFound(txErr):
		r.log.Debug().Str("op", op).Err(txErr).Msg("referenced row missing")
		return false, txErr
	case txErr != nil:
		r.storeFailure(op, txErr)
		return false, nil
	case !ok:
		r.log.Debug().Str("op", op).Msg("no rows matched")
	}

	return ok, nil
}

func (r *SQLRepository) storeFailure(op string, err error) {
	r.log.Error().Err(err).Str("op", op).Msg("store operation failed")
}

func (r *SQLRepository) exists(ctx context.Context, q queryer, table, idColumn string, id int64) (bool, error) {
	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ?`, table, idColumn)
	if err := q.QueryRowContext(ctx, r.dialect.rebind(query), id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check %s %d: %w", table, id, err)
	}
	return count > 0, nil
}

func (r *SQLRepository) requireProject(ctx context.Context, q queryer, id int64) error {
	ok, err := r.exists(ctx, q, "Project", "id", id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Entity: EntityProject, ID: id}
	}
	return nil
}

func (r *SQLRepository) requireEmployee(ctx context.Context, q queryer, id int64) error {
	ok, err := r.exists(ctx, q, "Employee", "id", id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Entity: EntityEmployee, ID: id}
	}
	return nil
}

// ProjectExists reports whether a project with the given id exists. A store
// failure is logged and reported as false.
func (r *SQLRepository) ProjectExists(ctx context.Context, projectID int64) bool {
	return r.checkExists(ctx, "project_exists", "Project", projectID)
}

// EmployeeExists reports whether an employee with the given id exists. A
// store failure is logged and reported as false.
func (r *SQLRepository) EmployeeExists(ctx context.Context, employeeID int64) bool {
	return r.checkExists(ctx, "employee_exists", "Employee", employeeID)
}

func (r *SQLRepository) checkExists(ctx context.Context, op, table string, id int64) bool {
	var found bool
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		found, err = r.exists(ctx, conn, table, "id", id)
		return err
	})
	if err != nil {
		r.storeFailure(op, err)
		return false
	}
	return found
}

// CreateProject inserts the project and sets its store-assigned ID.
func (r *SQLRepository) CreateProject(ctx context.Context, project *models.Project) bool {
	var id int64
	ok, _ := r.inTx(ctx, "create_project", func(tx *sql.Tx) (bool, error) {
		err := tx.QueryRowContext(ctx, r.dialect.rebind(`
			INSERT INTO Project (projectName, description, startDate, status)
			VALUES (?, ?, ?, ?) RETURNING id
		`), project.Name, project.Description, project.StartDate.Format(models.DateLayout), project.Status).Scan(&id)
		if err != nil {
			return false, fmt.Errorf("failed to insert project: %w", err)
		}
		return true, nil
	})
	if ok {
		project.ID = id
	}
	return ok
}

// CreateEmployee inserts the employee after checking that its project
// exists, and sets the store-assigned ID.
func (r *SQLRepository) CreateEmployee(ctx context.Context, employee *models.Employee) (bool, error) {
	var id int64
	ok, err := r.inTx(ctx, "create_employee", func(tx *sql.Tx) (bool, error) {
		if err := r.requireProject(ctx, tx, employee.ProjectID); err != nil {
			return false, err
		}

		err := tx.QueryRowContext(ctx, r.dialect.rebind(`
			INSERT INTO Employee (name, designation, gender, salary, project_id)
			VALUES (?, ?, ?, ?, ?) RETURNING id
		`), employee.Name, employee.Designation, employee.Gender, employee.Salary, employee.ProjectID).Scan(&id)
		if err != nil {
			return false, fmt.Errorf("failed to insert employee: %w", err)
		}
		return true, nil
	})
	if ok {
		employee.ID = id
	}
	return ok, err
}

// CreateTask inserts the task after checking that its employee and project
// exist, in that order, and sets the store-assigned ID.
func (r *SQLRepository) CreateTask(ctx context.Context, task *models.Task) (bool, error) {
	var id int64
	ok, err := r.inTx(ctx, "create_task", func(tx *sql.Tx) (bool, error) {
		if err := r.requireEmployee(ctx, tx, task.EmployeeID); err != nil {
			return false, err
		}
		if err := r.requireProject(ctx, tx, task.ProjectID); err != nil {
			return false, err
		}

		err := tx.QueryRowContext(ctx, r.dialect.rebind(`
			INSERT INTO Task (task_name, project_id, employee_id, status)
			VALUES (?, ?, ?, ?) RETURNING task_id
		`), task.Name, task.ProjectID, task.EmployeeID, task.Status).Scan(&id)
		if err != nil {
			return false, fmt.Errorf("failed to insert task: %w", err)
		}
		return true, nil
	})
	if ok {
		task.ID = id
	}
	return ok, err
}

// AssignProjectToEmployee moves an employee to another project.
func (r *SQLRepository) AssignProjectToEmployee(ctx context.Context, projectID, employeeID int64) (bool, error) {
	return r.inTx(ctx, "assign_project", func(tx *sql.Tx) (bool, error) {
		if err := r.requireProject(ctx, tx, projectID); err != nil {
			return false, err
		}
		if err := r.requireEmployee(ctx, tx, employeeID); err != nil {
			return false, err
		}

		return r.execAffected(ctx, tx, "failed to assign project", `
			UPDATE Employee SET project_id = ? WHERE id = ?
		`, projectID, employeeID)
	})
}

// AssignTaskToEmployee hands a task to another employee. The task is matched
// by both its ID and its project; when no row matches, nothing changes and
// the result is false.
func (r *SQLRepository) AssignTaskToEmployee(ctx context.Context, taskID, projectID, employeeID int64) (bool, error) {
	return r.inTx(ctx, "assign_task", func(tx *sql.Tx) (bool, error) {
		if err := r.requireProject(ctx, tx, projectID); err != nil {
			return false, err
		}
		if err := r.requireEmployee(ctx, tx, employeeID); err != nil {
			return false, err
		}

		return r.execAffected(ctx, tx, "failed to assign task", `
			UPDATE Task SET employee_id = ? WHERE task_id = ? AND project_id = ?
		`, employeeID, taskID, projectID)
	})
}

// DeleteEmployee removes the employee. Tasks that reference it are kept.
func (r *SQLRepository) DeleteEmployee(ctx context.Context, employeeID int64) (bool, error) {
	return r.inTx(ctx, "delete_employee", func(tx *sql.Tx) (bool, error) {
		if err := r.requireEmployee(ctx, tx, employeeID); err != nil {
			return false, err
		}

		return r.execAffected(ctx, tx, "failed to delete employee", `DELETE FROM Employee WHERE id = ?`, employeeID)
	})
}

// DeleteProject removes the project. Employees and tasks that reference it
// are kept.
func (r *SQLRepository) DeleteProject(ctx context.Context, projectID int64) (bool, error) {
	return r.inTx(ctx, "delete_project", func(tx *sql.Tx) (bool, error) {
		if err := r.requireProject(ctx, tx, projectID); err != nil {
			return false, err
		}

		return r.execAffected(ctx, tx, "failed to delete project", `DELETE FROM Project WHERE id = ?`, projectID)
	})
}

func (r *SQLRepository) execAffected(ctx context.Context, tx *sql.Tx, msg, query string, args ...interface{}) (bool, error) {
	res, err := tx.ExecContext(ctx, r.dialect.rebind(query), args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", msg, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", msg, err)
	}
	return n > 0, nil
}

// ListProjects returns every project in id order.
func (r *SQLRepository) ListProjects(ctx context.Context) []models.Project {
	return list(ctx, r, "list_projects", `
		SELECT id, projectName, description, startDate, status
		FROM Project ORDER BY id
	`, scanProject)
}

// ListEmployees returns every employee in id order.
func (r *SQLRepository) ListEmployees(ctx context.Context) []models.Employee {
	return list(ctx, r, "list_employees", `
		SELECT id, name, designation, gender, salary, project_id
		FROM Employee ORDER BY id
	`, scanEmployee)
}

// ListTasks returns the whole task table in id order.
func (r *SQLRepository) ListTasks(ctx context.Context) []models.Task {
	return list(ctx, r, "list_tasks", `
		SELECT task_id, task_name, project_id, employee_id, status
		FROM Task ORDER BY task_id
	`, scanTask)
}

// ListTasksFor returns the tasks owned by the employee within the project.
// The result is empty, not an error, when nothing matches.
func (r *SQLRepository) ListTasksFor(ctx context.Context, employeeID, projectID int64) []models.Task {
	return list(ctx, r, "list_tasks_for", `
		SELECT task_id, task_name, project_id, employee_id, status
		FROM Task WHERE employee_id = ? AND project_id = ? ORDER BY task_id
	`, scanTask, employeeID, projectID)
}

// list runs a read query on a scoped connection. Failures are logged and
// produce an empty slice.
func list[T any](ctx context.Context, r *SQLRepository, op, query string, scan func(*sql.Rows) (T, error), args ...interface{}) []T {
	items := []T{}

	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, r.dialect.rebind(query), args...)
		if err != nil {
			return fmt.Errorf("failed to query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return rows.Err()
	})
	if err != nil {
		r.storeFailure(op, err)
		return []T{}
	}

	return items
}

func scanProject(rows *sql.Rows) (models.Project, error) {
	var p models.Project
	err := rows.Scan(&p.ID, &p.Name, &p.Description, dateScanner{&p.StartDate}, &p.Status)
	if err != nil {
		return p, fmt.Errorf("failed to scan project: %w", err)
	}
	return p, nil
}

func scanEmployee(rows *sql.Rows) (models.Employee, error) {
	var e models.Employee
	err := rows.Scan(&e.ID, &e.Name, &e.Designation, &e.Gender, &e.Salary, &e.ProjectID)
	if err != nil {
		return e, fmt.Errorf("failed to scan employee: %w", err)
	}
	return e, nil
}

func scanTask(rows *sql.Rows) (models.Task, error) {
	var t models.Task
	err := rows.Scan(&t.ID, &t.Name, &t.ProjectID, &t.EmployeeID, &t.Status)
	if err != nil {
		return t, fmt.Errorf("failed to scan task: %w", err)
	}
	return t, nil
}

// dateScanner reads DATE columns, which drivers return either as time.Time
// or as text.
type dateScanner struct {
	t *time.Time
}

func (d dateScanner) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d.t = time.Time{}
	case time.Time:
		*d.t = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("unsupported date value %T", src)
	}
	return nil
}

func (d dateScanner) parse(s string) error {
	if len(s) > len(models.DateLayout) {
		s = s[:len(models.DateLayout)]
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d.t = t
	return nil
}
