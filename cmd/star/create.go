package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siiky/star"
)

func newCreateCmd(g *globalFlags) *cobra.Command {
	var (
		output string
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "create -f ARCHIVE FILE...",
		Short: "Create an archive from regular files, in argument order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a, err := star.CreateFromPaths(cmd.Context(), args, g.options()...)
			if err != nil {
				return err
			}
			if sorted {
				if err := a.Sort(); err != nil {
					return err
				}
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil {
					err = errors.Join(err, cerr)
				}
				if err != nil {
					_ = os.Remove(output)
				}
			}()

			w := bufio.NewWriter(f)
			if _, err := a.WriteTo(w); err != nil {
				return fmt.Errorf("%s: %w", output, err)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "file", "f", "", "Archive to write")
	cmd.Flags().BoolVar(&sorted, "sort", false, "Order entries for sorted lookups")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
