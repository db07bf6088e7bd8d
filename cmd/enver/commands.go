package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	modellib "github.com/ygrebnov/model"

	"github.com/ygrebnov/enver"
	"github.com/ygrebnov/enver/envstore"
	"github.com/ygrebnov/enver/sinks"
)

var errMissingRequired = errors.New("required config entries are missing")

// settings holds the flags shared by all subcommands. Zero values are filled
// from `default` tags before validation.
type settings struct {
	Dir      string `default:"config" validate:"nonempty"`
	Schema   string `validate:"nonempty"`
	File     string `default:"production.env" validate:"nonempty"`
	Fallback string
}

func (s *settings) resolve() error {
	mdl, err := modellib.New(s, modellib.WithRules[settings, string](modellib.BuiltinStringRules()))
	if err != nil {
		return err
	}
	if err := mdl.SetDefaults(); err != nil {
		return err
	}
	return mdl.Validate()
}

type app struct {
	store      envstore.Store
	settings   settings
	structured bool
}

// newRootCmd builds a fresh command tree bound to store, so tests can run it
// against an isolated environment.
func newRootCmd(store envstore.Store) *cobra.Command {
	a := &app{store: store}

	cmd := &cobra.Command{
		Use:   "enver",
		Short: "Scaffold and check dotenv config files.",
		Long: `enver reads a schema of expected environment variables and either
writes a commented template config file (init) or loads an existing one
and reports missing variables by importance (check).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.settings.resolve()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.settings.Dir, "dir", "", "config directory (default \"config\")")
	f.StringVar(&a.settings.Schema, "schema", "", "YAML or JSON file with entry declarations")
	f.StringVar(&a.settings.File, "file", "", "config file name (default \"production.env\")")
	f.StringVar(&a.settings.Fallback, "fallback", "", "file loaded when the config file is missing")
	f.BoolVar(&a.structured, "structured", false, "emit notifications through log/slog")

	cmd.AddCommand(a.newInitCmd(), a.newCheckCmd())
	return cmd
}

func (a *app) newInitCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a template config file for the schema.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := enver.LoadEntries(a.settings.Schema)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), enver.Render(entries))
				return nil
			}
			m, err := a.manager(cmd, entries)
			if err != nil {
				return err
			}
			if err := m.Init(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", m.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the template instead of writing it")
	return cmd
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the config file and report missing entries.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := enver.LoadEntries(a.settings.Schema)
			if err != nil {
				return err
			}
			m, err := a.manager(cmd, entries)
			if err != nil {
				return err
			}
			tally, err := m.Load()
			if err != nil {
				return err
			}
			if tally.Errors > 0 {
				return fmt.Errorf("%w: %s", errMissingRequired, tally)
			}
			return nil
		},
	}
}

func (a *app) manager(cmd *cobra.Command, entries []enver.Entry) (*enver.Manager, error) {
	lg := sinks.Writers(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if a.structured {
		lg = sinks.Slog(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)))
	}
	return enver.New(
		enver.Config{
			Entries:  entries,
			File:     a.settings.File,
			Fallback: a.settings.Fallback,
			Logger:   lg,
		},
		enver.WithDir(a.settings.Dir),
		enver.WithStore(a.store),
	)
}
