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

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Add, list and delete projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(a),
		newProjectListCmd(a),
		newProjectDeleteCmd(a),
	)
	return cmd
}

func newProjectAddCmd(a *app) *cobra.Command {
	var name, description, startDate, status string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a project",
		Example: `  projectmgr project add --name Apollo --start-date 2024-01-15 --status active`,
		Args:    cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			project, err := buildProject(name, description, startDate, status)
			if err != nil {
				return err
			}

			ok := a.repo.CreateProject(cmd.Context(), project)
			return cli.Report(cmd.OutOrStdout(), ok, nil, fmt.Sprintf("Project added with id %d.", project.ID))
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "project name (required)")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&startDate, "start-date", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&status, "status", "", "free-text status")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("start-date")
	return cmd
}

func buildProject(name, description, startDate, status string) (*models.Project, error) {
	date, err := models.ParseDate(startDate)
	if err != nil {
		return nil, &cli.ValidationError{Field: "start date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", startDate)}
	}

	project := &models.Project{
		Name:        strings.TrimSpace(name),
		Description: description,
		StartDate:   date,
		Status:      status,
	}
	if err := project.Validate(); err != nil {
		return nil, &cli.ValidationError{Message: err.Error()}
	}
	return project, nil
}

func newProjectListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseFormat(output)
			if err != nil {
				return err
			}
			return printProjects(cmd.OutOrStdout(), format, a.repo.ListProjects(cmd.Context()))
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func printProjects(w io.Writer, format cli.Format, projects []models.Project) error {
	if format != cli.FormatTable {
		return cli.Encode(w, format, projects)
	}

	table := cli.NewTable("ID", "NAME", "START", "STATUS", "DESCRIPTION")
	table.SetMaxWidth(4, cli.DefaultMaxWidth)
	for _, p := range projects {
		table.AddRow(strconv.FormatInt(p.ID, 10), p.Name, p.StartDateString(), formatStatus(p.Status), p.Description)
	}
	if table.Len() == 0 {
		fmt.Fprintln(w, "No projects found.")
		return nil
	}
	table.Render(w)
	return nil
}

func newProjectDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Long: `Delete a project. Employees and tasks that reference it are kept and
keep pointing at the deleted id.`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				return err
			}

			ok, err := a.repo.DeleteProject(cmd.Context(), id)
			return cli.Report(cmd.OutOrStdout(), ok, err, "Project deleted.")
		}),
	}
}

// parseID parses a positive integer id.
func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, &cli.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a positive integer", s)}
	}
	return id, nil
}

// formatStatus colors common status words.
func formatStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "open", "in progress", "in-progress":
		return cli.Green(status)
	case "paused", "on hold", "pending":
		return cli.Yellow(status)
	case "done", "completed", "complete", "closed", "archived":
		return cli.Gray(status)
	default:
		return status
	}
}
