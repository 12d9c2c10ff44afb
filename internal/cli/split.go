package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/colsplit/colsplit/pkg/collection"
	"github.com/colsplit/colsplit/pkg/errors"
	"github.com/colsplit/colsplit/pkg/layout"
	"github.com/colsplit/colsplit/pkg/sanitize"
)

// splitOpts holds the command-line flags for the split command.
type splitOpts struct {
	output    string // parent directory for the created tree
	overwrite bool   // replace an existing tree without asking
	dryRun    bool   // walk and count without writing
}

// newSplitCmd creates the split command, which decomposes a collection
// file into a directory tree of index and request records.
func newSplitCmd(cfg *Config) *cobra.Command {
	opts := splitOpts{output: cfg.Output}

	cmd := &cobra.Command{
		Use:   "split [collection.json]",
		Short: "Decompose a collection file into a directory tree",
		Long: `Split reads a Postman collection file and writes one directory per
folder and one JSON file per request underneath the output directory.
Each directory contains an index.json recording the folder metadata
and the exact order of its children, so the tree rebuilds losslessly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "parent directory for the created tree")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace an existing output tree")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report what would be written without writing")

	return cmd
}

func runSplit(ctx context.Context, input string, opts *splitOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if err := errors.ValidatePath(input); err != nil {
		return err
	}

	logger.Debugf("Parsing collection %s", input)
	col, err := collection.ParseFile(input)
	if err != nil {
		return err
	}

	target := filepath.Join(opts.output, sanitize.Clean(col.Info.Name))
	if !opts.overwrite && !opts.dryRun {
		if _, statErr := os.Stat(target); statErr == nil && isInteractive() {
			ok, promptErr := confirm(fmt.Sprintf("Output %s exists. Overwrite?", target))
			if promptErr != nil {
				return promptErr
			}
			if !ok {
				printInfo("Aborted, nothing written")
				return nil
			}
			opts.overwrite = true
		}
	}

	res, err := layout.Split(col, layout.SplitOptions{
		OutputDir: opts.output,
		Overwrite: opts.overwrite,
		DryRun:    opts.dryRun,
	})
	if err != nil {
		var verr *collection.ValidationError
		if stderrors.As(err, &verr) {
			for _, issue := range verr.Issues {
				printError("%s", issue)
			}
			return errors.New(errors.ErrCodeInvalidCollection, "collection failed validation with %d issue(s)", len(verr.Issues))
		}
		return err
	}

	for _, w := range res.Warnings {
		printWarning("%s", w)
	}

	if opts.dryRun {
		printInfo("Dry run: would create %d folders and %d files under %s", res.FoldersCreated, res.FilesCreated, res.OutputPath)
		return nil
	}

	printSuccess("Split %q", col.Info.Name)
	printFile(res.OutputPath)
	printStats(res.FoldersCreated, res.FilesCreated, false)
	printNextStep("Rebuild with", fmt.Sprintf("colsplit build %s", res.OutputPath))
	prog.done(fmt.Sprintf("Wrote %d records", res.FilesCreated))

	return nil
}
