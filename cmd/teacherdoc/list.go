package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zero750810/teacherdoc/pkg/records"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

func (a *app) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "courses",
		Short: "List courses with their category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), records.Courses, func(s records.Store) error {
				entries, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tCOURSE\tCATEGORY")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Record.Text("course_name"), e.Record.Text("course"))
				}
				return tw.Flush()
			})
		},
	})

	var courseID string
	teachers := &cobra.Command{
		Use:   "teachers",
		Short: "List teachers, optionally only those matching a course category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var course teacherdoc.Record
			if courseID != "" {
				err := a.withStore(ctx, records.Courses, func(s records.Store) error {
					var err error
					course, err = s.Get(ctx, courseID)
					return err
				})
				if err != nil {
					return err
				}
			}
			return a.withStore(ctx, records.Teachers, func(s records.Store) error {
				entries, err := s.List(ctx)
				if err != nil {
					return err
				}
				if course != nil {
					entries = records.TeachersFor(entries, course)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Record.Text("name"), e.Record.Text("course_type"))
				}
				return tw.Flush()
			})
		},
	}
	teachers.Flags().StringVar(&courseID, "course", "", "Course record id")
	cmd.AddCommand(teachers)

	return cmd
}
