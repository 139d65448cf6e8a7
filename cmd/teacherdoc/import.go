package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zero750810/teacherdoc/pkg/records"
)

func (a *app) newImportCmd() *cobra.Command {
	var (
		file string
		opts records.ImportOptions
	)
	cmd := &cobra.Command{
		Use:       "import {teachers|courses}",
		Short:     "Replace stored records with the rows of a spreadsheet",
		Long:      "Import reads an .xlsx workbook (sheet 師資 or 課程) or a .csv export and replaces every stored record of the collection.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{records.Teachers, records.Courses},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ImageDir == "" {
				opts.ImageDir = a.cfg.ImageDir
			}
			collection := args[0]
			importer := records.ImportTeachers
			if collection == records.Courses {
				importer = records.ImportCourses
			}

			var n int
			err := a.withStore(cmd.Context(), collection, func(s records.Store) error {
				var err error
				n, err = importer(cmd.Context(), s, file, opts)
				return err
			})
			if err != nil {
				return fmt.Errorf("import %s: %w", collection, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s\n", n, collection)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Spreadsheet to read (.xlsx or .csv)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "Keep only teachers of this region")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "utf-8", "CSV encoding: utf-8 or big5")
	cmd.Flags().StringVar(&opts.ImageDir, "images", "", "Image directory (default from config)")
	cmd.MarkFlagRequired("file")
	return cmd
}
