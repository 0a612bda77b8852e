package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
)

func newFindCmd(g *globalFlags) *cobra.Command {
	var (
		input  string
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "find -f ARCHIVE PATH",
		Short: "Print the index of an entry",
		Long: `Print the index of an entry.

With --sorted the lookup is a binary search, which only finds entries in
archives created with --sort.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.readArchive(input)
			if err != nil {
				return err
			}

			search := a.Search
			if sorted {
				if !a.IsSorted() {
					g.logger.Warn("archive is not sorted; binary search may miss entries", "archive", input)
				}
				search = a.SortedSearch
			}
			i, ok := search(args[0])
			if !ok {
				return &fs.PathError{Op: "find", Path: args[0], Err: fs.ErrNotExist}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), i)
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "file", "f", "", "Archive to read")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "Use binary search")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
