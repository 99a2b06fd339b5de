package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"projectmgr/internal/cli"
	"projectmgr/internal/models"
	"projectmgr/internal/store"
)

// errInputClosed ends the menu when stdin runs out mid-prompt.
var errInputClosed = errors.New("input closed")

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive numbered menu",
		Long: `Run the interactive console menu. Each option prompts for its fields,
calls the repository and prints the outcome. Choose 0 to exit.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			m := &menu{
				ctx:  cmd.Context(),
				repo: a.repo,
				in:   bufio.NewScanner(cmd.InOrStdin()),
				out:  cmd.OutOrStdout(),
			}
			return m.loop()
		}),
	}
}

type menu struct {
	ctx  context.Context
	repo store.Repository
	in   *bufio.Scanner
	out  io.Writer
}

type menuItem struct {
	label string
	run   func(*menu) error
}

var menuItems = []menuItem{
	{"Add Employee", (*menu).addEmployee},
	{"Add Project", (*menu).addProject},
	{"Add Task", (*menu).addTask},
	{"Assign Project to Employee", (*menu).assignProject},
	{"Assign Task to Employee", (*menu).assignTask},
	{"Delete Employee", (*menu).deleteEmployee},
	{"Delete Project", (*menu).deleteProject},
	{"List All Tasks in a Project", (*menu).listTasks},
}

func (m *menu) loop() error {
	for {
		m.printMenu()

		choice, err := m.prompt("Enter your choice: ")
		if errors.Is(err, errInputClosed) {
			return nil
		}

		n, convErr := strconv.Atoi(choice)
		switch {
		case convErr != nil || n < 0 || n > len(menuItems):
			fmt.Fprintln(m.out, cli.Red("Invalid choice! Please try again."))
			continue
		case n == 0:
			fmt.Fprintln(m.out, "Exiting the application. Goodbye!")
			return nil
		}

		item := menuItems[n-1]
		fmt.Fprintf(m.out, "----- %s -----\n", item.label)
		if err := item.run(m); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			// Outcome and validation messages are already printed; keep
			// the menu running.
			var ve *cli.ValidationError
			if errors.As(err, &ve) {
				fmt.Fprintln(m.out, cli.Red(ve.Error()))
			}
		}
	}
}

func (m *menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "=============================")
	fmt.Fprintln(m.out, "       Project Management     ")
	fmt.Fprintln(m.out, "=============================")
	for i, item := range menuItems {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, item.label)
	}
	fmt.Fprintln(m.out, "0. Exit")
}

func (m *menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		return "", errInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *menu) promptID(field string) (int64, error) {
	s, err := m.prompt("Enter " + field + ": ")
	if err != nil {
		return 0, err
	}
	return parseID(strings.ToLower(field), s)
}

// promptAll asks each label in turn and returns the answers in order.
func (m *menu) promptAll(labels ...string) ([]string, error) {
	answers := make([]string, len(labels))
	for i, label := range labels {
		s, err := m.prompt(label)
		if err != nil {
			return nil, err
		}
		answers[i] = s
	}
	return answers, nil
}

func (m *menu) addEmployee() error {
	in, err := m.promptAll("Enter Employee Name: ", "Enter Designation: ", "Enter Gender: ", "Enter Salary: ")
	if err != nil {
		return err
	}
	projectID, err := m.promptID("Project ID")
	if err != nil {
		return err
	}

	employee, err := buildEmployee(in[0], in[1], in[2], in[3], projectID)
	if err != nil {
		return err
	}

	ok, err := m.repo.CreateEmployee(m.ctx, employee)
	return cli.Report(m.out, ok, err, fmt.Sprintf("Employee added successfully with id %d.", employee.ID))
}

func (m *menu) addProject() error {
	in, err := m.promptAll("Enter Project Name: ", "Enter Description: ", "Enter Start Date (YYYY-MM-DD): ", "Enter Status: ")
	if err != nil {
		return err
	}

	project, err := buildProject(in[0], in[1], in[2], in[3])
	if err != nil {
		return err
	}

	ok := m.repo.CreateProject(m.ctx, project)
	return cli.Report(m.out, ok, nil, fmt.Sprintf("Project added successfully with id %d.", project.ID))
}

func (m *menu) addTask() error {
	name, err := m.prompt("Enter Task Name: ")
	if err != nil {
		return err
	}
	projectID, err := m.promptID("Project ID")
	if err != nil {
		return err
	}
	employeeID, err := m.promptID("Employee ID")
	if err != nil {
		return err
	}
	status, err := m.prompt("Enter Status: ")
	if err != nil {
		return err
	}

	task := &models.Task{Name: name, ProjectID: projectID, EmployeeID: employeeID, Status: status}
	if err := task.Validate(); err != nil {
		return &cli.ValidationError{Message: err.Error()}
	}

	ok, err := m.repo.CreateTask(m.ctx, task)
	return cli.Report(m.out, ok, err, fmt.Sprintf("Task added successfully with id %d.", task.ID))
}

func (m *menu) assignProject() error {
	projectID, err := m.promptID("Project ID")
	if err != nil {
		return err
	}
	employeeID, err := m.promptID("Employee ID")
	if err != nil {
		return err
	}

	ok, err := m.repo.AssignProjectToEmployee(m.ctx, projectID, employeeID)
	return cli.Report(m.out, ok, err, "Project assigned successfully.")
}

func (m *menu) assignTask() error {
	taskID, err := m.promptID("Task ID")
	if err != nil {
		return err
	}
	projectID, err := m.promptID("Project ID")
	if err != nil {
		return err
	}
	employeeID, err := m.promptID("Employee ID")
	if err != nil {
		return err
	}

	ok, err := m.repo.AssignTaskToEmployee(m.ctx, taskID, projectID, employeeID)
	return cli.Report(m.out, ok, err, "Task assigned successfully.")
}

func (m *menu) deleteEmployee() error {
	id, err := m.promptID("Employee ID")
	if err != nil {
		return err
	}

	ok, err := m.repo.DeleteEmployee(m.ctx, id)
	return cli.Report(m.out, ok, err, "Employee deleted successfully.")
}

func (m *menu) deleteProject() error {
	id, err := m.promptID("Project ID")
	if err != nil {
		return err
	}

	ok, err := m.repo.DeleteProject(m.ctx, id)
	return cli.Report(m.out, ok, err, "Project deleted successfully.")
}

func (m *menu) listTasks() error {
	employeeID, err := m.promptID("Employee ID")
	if err != nil {
		return err
	}
	projectID, err := m.promptID("Project ID")
	if err != nil {
		return err
	}

	tasks := m.repo.ListTasksFor(m.ctx, employeeID, projectID)
	if len(tasks) == 0 {
		fmt.Fprintln(m.out, "No tasks found for this project and employee.")
		return nil
	}

	fmt.Fprintln(m.out, "Tasks in Project:")
	return printTasks(m.out, cli.FormatTable, tasks)
}
