package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"projectmgr/internal/cli"
	"projectmgr/internal/models"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Add, list and reassign tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskListCmd(a),
		newTaskAssignCmd(a),
	)
	return cmd
}

func newTaskAddCmd(a *app) *cobra.Command {
	var (
		name, status          string
		projectID, employeeID int64
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a task owned by an employee within a project",
		Example: `  projectmgr task add --name "Write report" --project 1 --employee 2 --status open`,
		Args:    cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			task := &models.Task{
				Name:       strings.TrimSpace(name),
				ProjectID:  projectID,
				EmployeeID: employeeID,
				Status:     status,
			}
			if err := task.Validate(); err != nil {
				return &cli.ValidationError{Message: err.Error()}
			}

			ok, err := a.repo.CreateTask(cmd.Context(), task)
			return cli.Report(cmd.OutOrStdout(), ok, err, fmt.Sprintf("Task added with id %d.", task.ID))
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "task name (required)")
	cmd.Flags().StringVar(&status, "status", "", "free-text status")
	cmd.Flags().Int64Var(&projectID, "project", 0, "project id (required)")
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "employee id (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("employee")
	return cmd
}

func newTaskListCmd(a *app) *cobra.Command {
	var (
		output                string
		projectID, employeeID int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List every task, or with --employee and --project, the tasks that
employee owns within that project.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseFormat(output)
			if err != nil {
				return err
			}

			empSet, projSet := cmd.Flags().Changed("employee"), cmd.Flags().Changed("project")
			if empSet != projSet {
				return &cli.ValidationError{Message: "--employee and --project must be used together"}
			}

			var tasks []models.Task
			if empSet {
				tasks = a.repo.ListTasksFor(cmd.Context(), employeeID, projectID)
			} else {
				tasks = a.repo.ListTasks(cmd.Context())
			}
			return printTasks(cmd.OutOrStdout(), format, tasks)
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "only tasks owned by this employee id")
	cmd.Flags().Int64Var(&projectID, "project", 0, "only tasks within this project id")
	return cmd
}

func printTasks(w io.Writer, format cli.Format, tasks []models.Task) error {
	if format != cli.FormatTable {
		return cli.Encode(w, format, tasks)
	}

	table := cli.NewTable("ID", "NAME", "PROJECT", "EMPLOYEE", "STATUS")
	table.SetMaxWidth(1, cli.DefaultMaxWidth)
	for _, t := range tasks {
		table.AddRow(
			strconv.FormatInt(t.ID, 10),
			t.Name,
			strconv.FormatInt(t.ProjectID, 10),
			strconv.FormatInt(t.EmployeeID, 10),
			formatStatus(t.Status),
		)
	}
	if table.Len() == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}
	table.Render(w)
	return nil
}

func newTaskAssignCmd(a *app) *cobra.Command {
	var projectID, employeeID int64

	cmd := &cobra.Command{
		Use:   "assign <task-id> --project <project-id> --employee <employee-id>",
		Short: "Hand a task to another employee",
		Long: `Hand a task to another employee. The task must belong to the given
project; otherwise nothing changes.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID("task id", args[0])
			if err != nil {
				return err
			}

			ok, err := a.repo.AssignTaskToEmployee(cmd.Context(), taskID, projectID, employeeID)
			return cli.Report(cmd.OutOrStdout(), ok, err, "Task assigned.")
		}),
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id the task belongs to (required)")
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "employee id to assign (required)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("employee")
	return cmd
}
