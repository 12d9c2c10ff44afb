package cli

import (
	"os"

	"github.com/colsplit/colsplit/pkg/collection"
	"github.com/colsplit/colsplit/pkg/errors"
	"github.com/colsplit/colsplit/pkg/layout"
)

// loadCollection loads a collection from either form: a collection file
// or a split directory tree. The warnings slice carries non-fatal build
// findings and is empty for file input.
func loadCollection(path string) (*collection.Collection, []string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}

	if fi.IsDir() {
		col, res, err := layout.Build(path, layout.BuildOptions{})
		if err != nil {
			return nil, nil, err
		}
		return col, res.Warnings, nil
	}

	col, err := collection.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	return col, nil, nil
}
