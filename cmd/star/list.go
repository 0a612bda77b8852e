package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	var (
		input      string
		withDigest bool
	)

	cmd := &cobra.Command{
		Use:   "list -f ARCHIVE",
		Short: "List the entries of an archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.readArchive(input)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i := range a.Entries {
				e := &a.Entries[i]
				if withDigest {
					fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", i, e.Size, e.Offset, digest.FromBytes(a.Data[i]), e.Name())
				} else {
					fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", i, e.Size, e.Offset, e.Name())
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&input, "file", "f", "", "Archive to read")
	cmd.Flags().BoolVar(&withDigest, "digest", false, "Print the sha256 digest of each entry")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
