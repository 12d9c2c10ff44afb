package layout

import (
	"os"
	"path"
	"path/filepath"

	"github.com/colsplit/colsplit/pkg/collection"
	"github.com/colsplit/colsplit/pkg/errors"
	"github.com/colsplit/colsplit/pkg/sanitize"
)

// SplitOptions configures a split operation.
type SplitOptions struct {
	// OutputDir is the directory the collection root is created under.
	// Defaults to the current directory.
	OutputDir string

	// Overwrite replaces a pre-existing output root instead of failing.
	Overwrite bool

	// DryRun performs the complete walk, computing names, order, and counts,
	// without touching the filesystem.
	DryRun bool
}

// SplitResult reports what a split produced.
type SplitResult struct {
	RootName       string   // sanitized name of the collection root directory
	OutputPath     string   // full path of the created root
	FoldersCreated int      // directories created, including the root
	FilesCreated   int      // files written: index records and request files
	Warnings       []string // non-fatal findings, never empty the operation
}

// Split decomposes a collection into a directory tree under
// opts.OutputDir. Structural validation gates entry: when it fails, the
// returned error carries the complete problem list and nothing is written.
// Mid-walk I/O errors abort the walk; siblings already written stay on disk.
func Split(col *collection.Collection, opts SplitOptions) (*SplitResult, error) {
	rep := collection.Validate(col)
	if err := rep.Err(); err != nil {
		return nil, err
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}

	rootName := sanitize.Clean(col.Info.Name)
	outPath := filepath.Join(outDir, rootName)

	res := &SplitResult{
		RootName:   rootName,
		OutputPath: outPath,
		Warnings:   rep.WarningStrings(),
	}

	if _, err := os.Stat(outPath); err == nil {
		if !opts.Overwrite {
			return nil, errors.New(errors.ErrCodeExists, "output path already exists: %s", outPath)
		}
		if !opts.DryRun {
			if err := os.RemoveAll(outPath); err != nil {
				return nil, errors.Wrap(errors.ErrCodeIO, err, "remove %s", outPath)
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", outPath)
	}

	s := &splitter{dryRun: opts.DryRun, res: res}
	root := &IndexRecord{
		Meta:     Meta{Kind: MetaCollection},
		Info:     &col.Info,
		Variable: col.Variable,
		Event:    col.Event,
		Auth:     col.Auth,
	}
	if err := s.splitDir(outPath, "", root, col.Items); err != nil {
		return nil, err
	}
	return res, nil
}

type splitter struct {
	dryRun bool
	res    *SplitResult
}

// splitDir writes one directory: its index record, then each child in source
// order. rel is the directory's path relative to the collection root, slash
// separated, empty for the root itself.
//
// Name assignment happens entirely within a scope constructed here and
// discarded on return. Scopes never travel into recursion: a collision with
// a same-named entry at another nesting level must not trigger renaming.
func (s *splitter) splitDir(dir, rel string, rec *IndexRecord, children []*collection.Node) error {
	scope := sanitize.NewScope()

	type entry struct {
		node *collection.Node
		name string // assigned on-disk name, extension included for requests
	}
	entries := make([]entry, 0, len(children))
	order := make([]string, 0, len(children))

	for _, child := range children {
		name := claimChildName(scope, child)
		entries = append(entries, entry{node: child, name: name})
		order = append(order, name)
	}
	rec.Order = order

	if err := s.mkdir(dir); err != nil {
		return err
	}
	if err := s.writeFile(filepath.Join(dir, IndexFile), rec); err != nil {
		return err
	}

	for _, e := range entries {
		if e.node.Kind == collection.KindFolder {
			sub := folderRecord(e.node, rel)
			if err := s.splitDir(filepath.Join(dir, e.name), path.Join(rel, e.name), sub, e.node.Children); err != nil {
				return err
			}
			continue
		}
		if err := s.writeFile(filepath.Join(dir, e.name), leafRecord(e.node, rel)); err != nil {
			return err
		}
	}
	return nil
}

// claimChildName assigns a child's on-disk name within its sibling scope.
// The name "index.json" is reserved for the directory's own record: a child
// that lands on it, whether a request named "index" or a folder named
// "index.json", is renamed through the scope like any other collision.
func claimChildName(scope *sanitize.Scope, child *collection.Node) string {
	base := sanitize.Clean(child.Name)
	for {
		name := scope.Claim(base)
		if child.Kind != collection.KindFolder {
			name += LeafExt
		}
		if name != IndexFile {
			return name
		}
	}
}

func (s *splitter) mkdir(dir string) error {
	if !s.dryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create directory %s", dir)
		}
	}
	s.res.FoldersCreated++
	return nil
}

func (s *splitter) writeFile(file string, record any) error {
	if !s.dryRun {
		data, err := encodeRecord(record)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode record for %s", file)
		}
		if err := os.WriteFile(file, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s", file)
		}
	}
	s.res.FilesCreated++
	return nil
}

// folderRecord builds the index record for a folder node. The record stores
// the original display name; the on-disk directory name is a derived
// artifact and never part of the logical model.
func folderRecord(n *collection.Node, parentRel string) *IndexRecord {
	return &IndexRecord{
		Meta:        Meta{Kind: MetaFolder, ParentPath: parentRel},
		Name:        n.Name,
		Description: n.Description,
		Variable:    n.Variable,
		Event:       n.Event,
		Auth:        n.Auth,
		Request:     n.Request, // ambiguous folders keep their payload
		Response:    n.Response,
	}
}

func leafRecord(n *collection.Node, folderRel string) *LeafRecord {
	return &LeafRecord{
		Meta:        Meta{Kind: MetaRequest, FolderPath: folderRel},
		Name:        n.Name,
		Description: n.Description,
		Variable:    n.Variable,
		Event:       n.Event,
		Auth:        n.Auth,
		Request:     n.Request,
		Response:    n.Response,
	}
}
