package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectmgr/internal/cli"
	"projectmgr/internal/models"
	"projectmgr/internal/store"
)

func TestMain(m *testing.M) {
	cli.SetColorEnabled(false)
	os.Exit(m.Run())
}

// setupTestStore points the commands at a fresh SQLite file.
func setupTestStore(t *testing.T) {
	t.Helper()
	t.Setenv("PROJECTMGR_STORE__DRIVER", "sqlite3")
	t.Setenv("PROJECTMGR_STORE__PATH", filepath.Join(t.TempDir(), "cmd.db"))
	t.Setenv("PROJECTMGR_LOGGING__LEVEL", "error")
}

// execute runs the CLI with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, "", args...)
	require.NoError(t, err, "projectmgr %s\n%s", strings.Join(args, " "), out)
	return out
}

// seedCommands creates project 1, employee 1 on it and task 1 for both.
func seedCommands(t *testing.T) {
	t.Helper()
	mustExecute(t, "project", "add", "--name", "Apollo", "--start-date", "2024-01-15", "--status", "active")
	mustExecute(t, "employee", "add", "--name", "John", "--designation", "Developer", "--gender", "Male", "--salary", "5000", "--project", "1")
	mustExecute(t, "task", "add", "--name", "Design", "--project", "1", "--employee", "1", "--status", "open")
}

func TestProjectCommands(t *testing.T) {
	setupTestStore(t)

	out := mustExecute(t, "project", "add", "--name", "Apollo", "--description", "Moon landing", "--start-date", "2024-01-15", "--status", "active")
	assert.Equal(t, "Project added with id 1.\n", out)

	out = mustExecute(t, "project", "list")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Apollo")
	assert.Contains(t, out, "2024-01-15")
	assert.Contains(t, out, "Moon landing")

	out = mustExecute(t, "project", "delete", "1")
	assert.Equal(t, "Project deleted.\n", out)

	out, err := execute(t, "", "project", "delete", "1")
	assert.True(t, errors.Is(err, store.ErrProjectNotFound))
	assert.Equal(t, "Not found: project with id 1 not found\n", out)

	out = mustExecute(t, "project", "list")
	assert.Equal(t, "No projects found.\n", out)
}

func TestProjectAdd_InvalidInput(t *testing.T) {
	setupTestStore(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad date", args: []string{"--name", "A", "--start-date", "15/01/2024"}, want: "start date"},
		{name: "blank name", args: []string{"--name", " ", "--start-date", "2024-01-15"}, want: "project_name is required"},
		{name: "missing flag", args: []string{"--name", "A"}, want: "start-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", append([]string{"project", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEmployeeCommands(t *testing.T) {
	setupTestStore(t)
	seedCommands(t)

	out := mustExecute(t, "employee", "list", "-o", "yaml")
	assert.Contains(t, out, "name: John")
	assert.Contains(t, out, "project_id: 1")

	out = mustExecute(t, "employee", "list")
	assert.Contains(t, out, "5000.00")

	mustExecute(t, "project", "add", "--name", "Gemini", "--start-date", "2024-03-01")
	out = mustExecute(t, "employee", "assign", "1", "--project", "2")
	assert.Equal(t, "Project assigned.\n", out)

	_, err := execute(t, "", "employee", "assign", "1", "--project", "9")
	assert.True(t, errors.Is(err, store.ErrProjectNotFound))

	out = mustExecute(t, "employee", "delete", "1")
	assert.Equal(t, "Employee deleted.\n", out)

	// the task owned by the deleted employee stays
	out = mustExecute(t, "task", "list")
	assert.Contains(t, out, "Design")
}

func TestEmployeeAdd_MissingProject(t *testing.T) {
	setupTestStore(t)

	out, err := execute(t, "", "employee", "add", "--name", "John", "--salary", "100", "--project", "9")
	assert.True(t, errors.Is(err, store.ErrProjectNotFound))
	assert.Equal(t, "Not found: project with id 9 not found\n", out)

	out = mustExecute(t, "employee", "list")
	assert.Equal(t, "No employees found.\n", out)
}

func TestEmployeeAdd_InvalidSalary(t *testing.T) {
	setupTestStore(t)
	mustExecute(t, "project", "add", "--name", "Apollo", "--start-date", "2024-01-15")

	_, err := execute(t, "", "employee", "add", "--name", "John", "--salary", "lots", "--project", "1")
	var ve *cli.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "salary", ve.Field)

	_, err = execute(t, "", "employee", "add", "--name", "John", "--salary", "-5", "--project", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salary must not be negative")
}

func TestTaskCommands(t *testing.T) {
	setupTestStore(t)
	seedCommands(t)

	out := mustExecute(t, "task", "list", "--employee", "1", "--project", "1", "-o", "json")
	var tasks []models.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Design", tasks[0].Name)

	out = mustExecute(t, "task", "list", "--employee", "2", "--project", "1", "-o", "json")
	assert.Equal(t, "[]\n", out)

	_, err := execute(t, "", "task", "list", "--employee", "1")
	var ve *cli.ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = execute(t, "", "task", "add", "--name", "Build", "--project", "1", "--employee", "7")
	assert.True(t, errors.Is(err, store.ErrEmployeeNotFound))

	mustExecute(t, "employee", "add", "--name", "Jane", "--project", "1")
	out = mustExecute(t, "task", "assign", "1", "--project", "1", "--employee", "2")
	assert.Equal(t, "Task assigned.\n", out)

	out = mustExecute(t, "task", "list", "--employee", "2", "--project", "1")
	assert.Contains(t, out, "Design")
}

func TestTaskAssign_WrongProjectFails(t *testing.T) {
	setupTestStore(t)
	seedCommands(t)
	mustExecute(t, "project", "add", "--name", "Gemini", "--start-date", "2024-03-01")

	out, err := execute(t, "", "task", "assign", "1", "--project", "2", "--employee", "1")
	assert.ErrorIs(t, err, cli.ErrOperationFailed)
	assert.Contains(t, out, "Failed")
}

func TestListCommands_EmptyStore(t *testing.T) {
	setupTestStore(t)

	assert.Equal(t, "No projects found.\n", mustExecute(t, "project", "list"))
	assert.Equal(t, "No employees found.\n", mustExecute(t, "employee", "list"))
	assert.Equal(t, "No tasks found.\n", mustExecute(t, "task", "list"))
}

func TestListOutputFormatValidation(t *testing.T) {
	setupTestStore(t)

	_, err := execute(t, "", "project", "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestInvalidID(t *testing.T) {
	setupTestStore(t)

	_, err := execute(t, "", "project", "delete", "abc")
	var ve *cli.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "project id", ve.Field)
}

func TestInvalidConfig(t *testing.T) {
	setupTestStore(t)
	t.Setenv("PROJECTMGR_STORE__DRIVER", "oracle")

	_, err := execute(t, "", "project", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestMenuCommand(t *testing.T) {
	setupTestStore(t)

	script := strings.Join([]string{
		"2", "Apollo", "Moon landing", "2024-01-15", "active",
		"1", "John", "Developer", "Male", "5000", "1",
		"3", "Design", "1", "1", "open",
		"8", "1", "1",
		"8", "1", "2",
		"9",
		"7", "abc",
		"0",
	}, "\n") + "\n"

	out, err := execute(t, script, "menu")
	require.NoError(t, err)

	assert.Contains(t, out, "       Project Management     ")
	assert.Contains(t, out, "Project added successfully with id 1.")
	assert.Contains(t, out, "Employee added successfully with id 1.")
	assert.Contains(t, out, "Task added successfully with id 1.")
	assert.Contains(t, out, "Tasks in Project:")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "No tasks found for this project and employee.")
	assert.Contains(t, out, "Invalid choice! Please try again.")
	assert.Contains(t, out, `invalid project id: "abc" is not a positive integer`)
	assert.Contains(t, out, "Exiting the application. Goodbye!")
}

func TestMenuCommand_NotFoundKeepsRunning(t *testing.T) {
	setupTestStore(t)

	out, err := execute(t, "6\n5\n", "menu")
	require.NoError(t, err, "menu ends cleanly when input runs out")
	assert.Contains(t, out, "Not found: employee with id 5 not found")
}
