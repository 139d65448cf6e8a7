package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zero750810/teacherdoc/pkg/records"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	configPath string
	verbose    bool

	cfg    *fileConfig
	logger *teacherdoc.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "teacherdoc",
		Short: "Fill teacher and course document templates",
		Long: `teacherdoc fills .docx and .odt templates with teacher and course records.
Markers such as @name in the template are replaced by record values, images
are embedded and tables grow to fit course content.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		a.newGenerateCmd(),
		a.newWatchCmd(),
		a.newImportCmd(),
		a.newListCmd(),
		newTagsCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := teacherdoc.ParseLogLevel(cfg.Engine.LogLevel)
	if a.verbose {
		level = teacherdoc.LogDebug
	}
	a.logger = teacherdoc.NewLogger(cmd.ErrOrStderr(), level)
	teacherdoc.SetLogger(a.logger)
	teacherdoc.SetGlobalConfig(&cfg.Engine)
	a.logger.Debug("configuration loaded: store=%s path=%s", cfg.Store.Driver, cfg.Store.Path)
	return nil
}

func (a *app) engine() *teacherdoc.Engine {
	e := teacherdoc.NewWithConfig(&a.cfg.Engine)
	e.SetLogger(a.logger)
	return e
}

// withStore opens a collection, runs fn and closes it.
func (a *app) withStore(ctx context.Context, collection string, fn func(records.Store) error) error {
	s, err := records.Open(ctx, a.cfg.Store, collection)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// record loads and merges the teacher and course records; course fields
// win.
func (a *app) record(ctx context.Context, teacherID, courseID string) (teacherdoc.Record, error) {
	var teacher, course teacherdoc.Record
	err := a.withStore(ctx, records.Teachers, func(s records.Store) error {
		var err error
		teacher, err = s.Get(ctx, teacherID)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = a.withStore(ctx, records.Courses, func(s records.Store) error {
		var err error
		course, err = s.Get(ctx, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return teacherdoc.Merge(teacher, course), nil
}

// report prints the output path of one generation to stdout and its
// warnings to stderr.
func report(cmd *cobra.Command, res *teacherdoc.Result) {
	fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", filepath.Base(res.Path), w)
	}
}
