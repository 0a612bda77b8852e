// Command star creates, lists and extracts STAR archives.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/siiky/star"
)

type globalFlags struct {
	verbose   bool
	logFormat string
	logger    *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "star",
		Short:         "Create, inspect and extract STAR archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd, g)
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(
		newCreateCmd(g),
		newListCmd(g),
		newCatCmd(g),
		newFindCmd(g),
		newExtractCmd(g),
	)
	return cmd
}

func newLogger(cmd *cobra.Command, g *globalFlags) (*slog.Logger, error) {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	switch g.logFormat {
	case "text":
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", g.logFormat)
	}
}

// options returns the archive options shared by every subcommand.
func (g *globalFlags) options() []star.Option {
	return []star.Option{star.WithLogger(g.logger)}
}

// readArchive opens and reads the archive at path.
func (g *globalFlags) readArchive(path string) (*star.Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := star.Read(f, g.options()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
