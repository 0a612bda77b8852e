package main

import (
	"github.com/spf13/cobra"
)

func newCatCmd(g *globalFlags) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "cat -f ARCHIVE PATH",
		Short: "Write the content of one entry to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.readArchive(input)
			if err != nil {
				return err
			}
			data, err := a.ReadFile(args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "file", "f", "", "Archive to read")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
