package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
)

type generateOptions struct {
	teacher  string
	course   string
	template string
	glob     string
}

func (a *app) newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate documents for one teacher and course",
		Example: `  teacherdoc generate --teacher 3 --course 1 --template templates/application.docx
  teacherdoc generate --teacher 3 --course 1 --glob 'templates/**/*.{docx,odt}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.teacher, "teacher", "", "Teacher record id")
	cmd.Flags().StringVar(&opts.course, "course", "", "Course record id")
	cmd.Flags().StringVar(&opts.template, "template", "", "Template file (.docx or .odt)")
	cmd.Flags().StringVar(&opts.glob, "glob", "", "Generate from every template matching the pattern")
	cmd.MarkFlagRequired("teacher")
	cmd.MarkFlagRequired("course")
	cmd.MarkFlagsOneRequired("template", "glob")
	cmd.MarkFlagsMutuallyExclusive("template", "glob")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	templates := []string{opts.template}
	if opts.glob != "" {
		var err error
		if templates, err = matchTemplates(opts.glob); err != nil {
			return err
		}
	}

	rec, err := a.record(cmd.Context(), opts.teacher, opts.course)
	if err != nil {
		return err
	}

	e := a.engine()
	var errs []error
	for _, tpl := range templates {
		res, err := e.Generate(tpl, rec)
		if err != nil {
			a.logger.Error("%v", err)
			errs = append(errs, err)
			continue
		}
		report(cmd, res)
	}
	return errors.Join(errs...)
}

// matchTemplates expands pattern to the supported templates it matches, in
// name order.
func matchTemplates(pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	var templates []string
	for _, m := range matches {
		if _, ok := container.FormatOf(m); ok {
			templates = append(templates, m)
		}
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no .docx or .odt template matches %q", pattern)
	}
	sort.Strings(templates)
	return templates, nil
}
