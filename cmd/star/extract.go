package main

import (
	"github.com/spf13/cobra"

	"github.com/siiky/star"
)

func newExtractCmd(g *globalFlags) *cobra.Command {
	var (
		input     string
		dir       string
		overwrite bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "extract -f ARCHIVE [-C DIR] [PATH...]",
		Short: "Extract entries into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.readArchive(input)
			if err != nil {
				return err
			}
			opts := []star.ExtractOption{
				star.ExtractWithOverwrite(overwrite),
				star.ExtractWithWorkers(workers),
			}
			if len(args) > 0 {
				opts = append(opts, star.ExtractPaths(args...))
			}
			return a.Extract(cmd.Context(), dir, opts...)
		},
	}
	cmd.Flags().StringVarP(&input, "file", "f", "", "Archive to read")
	cmd.Flags().StringVarP(&dir, "directory", "C", ".", "Destination directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().IntVar(&workers, "workers", 4, "Files written concurrently")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
