package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/colsplit/colsplit/pkg/buildinfo"
)

// Execute runs the colsplit CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return newRootCmd(cfg).ExecuteContext(ctx)
}

func newRootCmd(cfg *Config) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "colsplit",
		Short: "Colsplit converts Postman collections to directory trees and back",
		Long: `Colsplit decomposes a Postman collection into a directory tree of small
JSON records, one per folder and request, and reassembles the tree into a
collection equivalent to the original input.

Folders become directories with an index.json describing the folder and the
order of its children. Requests become standalone JSON files. The split
layout is friendly to version control: edits, renames and reorders show up
as small focused diffs instead of one opaque blob.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			if !cfg.Color {
				lipgloss.DefaultRenderer().SetColorProfile(termenv.Ascii)
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSplitCmd(cfg))
	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newTreeCmd(cfg))
	root.AddCommand(newCacheCmd(cfg))
	root.AddCommand(newCompletionCmd())

	return root
}
