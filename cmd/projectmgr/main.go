// Package main is the entry point for the projectmgr CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"projectmgr/internal/config"
	"projectmgr/internal/logger"
	"projectmgr/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the configuration, logger and repository a command runs with.
type app struct {
	cfg  *config.Config
	log  zerolog.Logger
	repo store.Repository
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "projectmgr",
		Short: "projectmgr - manage projects, employees and tasks",
		Long: `projectmgr keeps records of projects, the employees assigned to them
and the tasks those employees own.

Employees must belong to an existing project and tasks must reference an
existing project and employee. Deleting a project or employee leaves the
rows that reference it in place.

Configuration is read from PROJECTMGR_* environment variables (and a .env
file), e.g. PROJECTMGR_STORE__DRIVER=pgx.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate("projectmgr version {{.Version}}\n")

	root.AddCommand(
		newProjectCmd(a),
		newEmployeeCmd(a),
		newTaskCmd(a),
		newMenuCmd(a),
		newServeCmd(a),
	)

	return root
}

// run wraps a command body so it executes with an open repository that is
// closed again on return.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd); err != nil {
			return err
		}
		defer a.close()

		return fn(cmd, args)
	}
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(cfg, cmd.ErrOrStderr())

	repo, err := store.Open(cfg.Store, a.log)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}

func (a *app) close() {
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close store")
	}
	a.repo = nil
}
