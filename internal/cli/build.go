package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/colsplit/colsplit/pkg/collection"
	"github.com/colsplit/colsplit/pkg/errors"
	"github.com/colsplit/colsplit/pkg/layout"
	"github.com/colsplit/colsplit/pkg/sanitize"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output   string // output collection file path
	validate bool   // validate the rebuilt collection before writing
	newID    bool   // assign a fresh _postman_id to the rebuilt collection
}

// newBuildCmd creates the build command, which reassembles a collection
// file from a split directory tree.
func newBuildCmd() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [directory]",
		Short: "Reassemble a collection file from a directory tree",
		Long: `Build walks a split directory tree and reassembles the original
collection file. Children are emitted strictly in the order recorded in
each index.json; the filesystem listing is never consulted for ordering.
Order entries without a matching file produce a warning and are omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <name>.postman_collection.json)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "validate the rebuilt collection before writing")
	cmd.Flags().BoolVar(&opts.newID, "new-id", false, "assign a fresh _postman_id to the rebuilt collection")

	return cmd
}

func runBuild(ctx context.Context, dir string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if err := errors.ValidatePath(dir); err != nil {
		return err
	}

	logger.Debugf("Rebuilding collection from %s", dir)
	col, res, err := layout.Build(dir, layout.BuildOptions{Validate: opts.validate})
	if err != nil {
		var verr *collection.ValidationError
		if stderrors.As(err, &verr) {
			for _, issue := range verr.Issues {
				printError("%s", issue)
			}
			return errors.New(errors.ErrCodeInvalidCollection, "rebuilt collection failed validation with %d issue(s)", len(verr.Issues))
		}
		return err
	}

	for _, w := range res.Warnings {
		printWarning("%s", w)
	}

	if opts.newID {
		old := col.Info.PostmanID
		col.Info.PostmanID = uuid.NewString()
		logger.Debugf("Replaced _postman_id %q with %q", old, col.Info.PostmanID)
	}

	out := opts.output
	if out == "" {
		out = sanitize.Clean(res.RootName) + ".postman_collection.json"
	}
	if err := layout.WriteFile(col, out); err != nil {
		return err
	}

	printSuccess("Rebuilt %q", res.RootName)
	printFile(out)
	printDetail("%d items processed", res.ItemsProcessed)
	prog.done(fmt.Sprintf("Assembled %d items", res.ItemsProcessed))

	return nil
}
