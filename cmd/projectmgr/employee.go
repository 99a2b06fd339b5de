package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"projectmgr/internal/cli"
	"projectmgr/internal/models"
)

func newEmployeeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees", "emp"},
		Short:   "Add, list, delete and reassign employees",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(a),
		newEmployeeListCmd(a),
		newEmployeeDeleteCmd(a),
		newEmployeeAssignCmd(a),
	)
	return cmd
}

func newEmployeeAddCmd(a *app) *cobra.Command {
	var (
		name, designation, gender, salary string
		projectID                         int64
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an employee to an existing project",
		Example: `  projectmgr employee add --name John --designation Developer --gender Male --salary 5000 --project 1`,
		Args:    cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			employee, err := buildEmployee(name, designation, gender, salary, projectID)
			if err != nil {
				return err
			}

			ok, err := a.repo.CreateEmployee(cmd.Context(), employee)
			return cli.Report(cmd.OutOrStdout(), ok, err, fmt.Sprintf("Employee added with id %d.", employee.ID))
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "employee name (required)")
	cmd.Flags().StringVar(&designation, "designation", "", "job title")
	cmd.Flags().StringVar(&gender, "gender", "", "gender")
	cmd.Flags().StringVar(&salary, "salary", "0", "salary, a non-negative decimal")
	cmd.Flags().Int64Var(&projectID, "project", 0, "project id (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("project")
	return cmd
}

func buildEmployee(name, designation, gender, salary string, projectID int64) (*models.Employee, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(salary))
	if err != nil {
		return nil, &cli.ValidationError{Field: "salary", Message: fmt.Sprintf("%q is not a number", salary)}
	}

	employee := &models.Employee{
		Name:        strings.TrimSpace(name),
		Designation: designation,
		Gender:      gender,
		Salary:      amount,
		ProjectID:   projectID,
	}
	if err := employee.Validate(); err != nil {
		return nil, &cli.ValidationError{Message: err.Error()}
	}
	return employee, nil
}

func newEmployeeListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all employees",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseFormat(output)
			if err != nil {
				return err
			}
			return printEmployees(cmd.OutOrStdout(), format, a.repo.ListEmployees(cmd.Context()))
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func printEmployees(w io.Writer, format cli.Format, employees []models.Employee) error {
	if format != cli.FormatTable {
		return cli.Encode(w, format, employees)
	}

	table := cli.NewTable("ID", "NAME", "DESIGNATION", "GENDER", "SALARY", "PROJECT")
	for _, e := range employees {
		table.AddRow(
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Designation,
			e.Gender,
			e.SalaryString(),
			strconv.FormatInt(e.ProjectID, 10),
		)
	}
	if table.Len() == 0 {
		fmt.Fprintln(w, "No employees found.")
		return nil
	}
	table.Render(w)
	return nil
}

func newEmployeeDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <employee-id>",
		Short: "Delete an employee",
		Long:  `Delete an employee. Tasks owned by the employee are kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID("employee id", args[0])
			if err != nil {
				return err
			}

			ok, err := a.repo.DeleteEmployee(cmd.Context(), id)
			return cli.Report(cmd.OutOrStdout(), ok, err, "Employee deleted.")
		}),
	}
}

func newEmployeeAssignCmd(a *app) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "assign <employee-id> --project <project-id>",
		Short: "Move an employee to another project",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			employeeID, err := parseID("employee id", args[0])
			if err != nil {
				return err
			}
			if projectID <= 0 {
				return &cli.ValidationError{Field: "project id", Message: "must be a positive integer"}
			}

			ok, err := a.repo.AssignProjectToEmployee(cmd.Context(), projectID, employeeID)
			return cli.Report(cmd.OutOrStdout(), ok, err, "Project assigned.")
		}),
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id (required)")
	cmd.MarkFlagRequired("project")
	return cmd
}
