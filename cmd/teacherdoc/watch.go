package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// settle is how long the template must stay quiet before regenerating.
// Editors often save in several writes.
const settle = 300 * time.Millisecond

func (a *app) newWatchCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate a document whenever its template is saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.teacher, "teacher", "", "Teacher record id")
	cmd.Flags().StringVar(&opts.course, "course", "", "Course record id")
	cmd.Flags().StringVar(&opts.template, "template", "", "Template file (.docx or .odt)")
	cmd.MarkFlagRequired("teacher")
	cmd.MarkFlagRequired("course")
	cmd.MarkFlagRequired("template")
	return cmd
}

func (a *app) runWatch(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	tpl, err := filepath.Abs(opts.template)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// The directory is watched because editors replace the file on save.
	if err := watcher.Add(filepath.Dir(tpl)); err != nil {
		return err
	}

	e := a.engine()
	generate := func() {
		rec, err := a.record(ctx, opts.teacher, opts.course)
		if err != nil {
			a.logger.Error("%v", err)
			return
		}
		res, err := e.Generate(tpl, rec)
		if err != nil {
			a.logger.Error("%v", err)
			return
		}
		report(cmd, res)
	}

	generate()
	a.logger.Info("watching %s", tpl)

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != tpl || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			a.logger.Debug("template event: %s", ev)
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error: %v", err)
		case <-timer.C:
			generate()
		}
	}
}
