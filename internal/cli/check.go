package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/colsplit/colsplit/pkg/collection"
	"github.com/colsplit/colsplit/pkg/errors"
)

// newCheckCmd creates the check command, which validates a collection
// file or split tree without writing anything.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file-or-directory]",
		Short: "Validate a collection file or split tree",
		Long: `Check loads a collection from either form, a collection file or a split
directory tree, runs structural validation and reports every problem
found. Nothing is written. The exit status is non-zero when errors are
present; warnings alone do not fail the check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runCheck(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)

	col, buildWarnings, err := loadCollection(input)
	if err != nil {
		return err
	}

	for _, w := range buildWarnings {
		printWarning("%s", w)
	}

	logger.Debugf("Validating %q", col.Info.Name)
	rep := collection.Validate(col)

	for _, issue := range rep.Warnings {
		printWarning("%s", issue)
	}
	for _, issue := range rep.Errors {
		printError("%s", issue)
	}

	if !rep.Valid() {
		return errors.New(errors.ErrCodeInvalidCollection, "validation failed with %d error(s)", len(rep.Errors))
	}

	printSuccess("%q is valid (%d items)", col.Info.Name, col.CountNodes())
	return nil
}
