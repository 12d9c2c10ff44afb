package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/colsplit/colsplit/pkg/collection"
	"github.com/colsplit/colsplit/pkg/errors"
)

// BuildOptions configures a build operation.
type BuildOptions struct {
	// Validate re-runs structural validation against the rebuilt tree and
	// fails the operation when it does not satisfy the contract, even though
	// every individual record was readable.
	Validate bool
}

// BuildResult reports what a build processed.
type BuildResult struct {
	RootName       string   // display name of the rebuilt collection
	ItemsProcessed int      // folders and requests reassembled
	Warnings       []string // non-fatal findings: missing or unreferenced entries
}

// Build reconstructs a collection from the decomposed directory at dir.
//
// The root index record is a fatal pre-condition: a missing or corrupt
// index.json, or dir not being a directory, stops the build. Children are
// assembled strictly in the index record's order sequence. An order entry
// with no matching file or subdirectory yields a warning and an omitted
// slot, never a silent reorder.
func Build(dir string, opts BuildOptions) (*collection.Collection, *BuildResult, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", dir)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", dir)
	}
	if !fi.IsDir() {
		return nil, nil, errors.New(errors.ErrCodeInvalidPath, "input is not a directory: %s", dir)
	}

	rec, err := readIndex(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, nil, err
	}
	if rec.Meta.Kind != MetaCollection && rec.Meta.Kind != legacyMetaRoot {
		return nil, nil, errors.New(errors.ErrCodeInvalidLayout,
			"%s: root index has kind %q, want %q", dir, rec.Meta.Kind, MetaCollection)
	}
	if rec.Info == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidLayout, "%s: root index has no info block", dir)
	}

	res := &BuildResult{RootName: rec.Info.Name}
	col := &collection.Collection{
		Info:     *rec.Info,
		Variable: rec.Variable,
		Event:    rec.Event,
		Auth:     rec.Auth,
	}

	b := &builder{res: res}
	col.Items, err = b.readChildren(dir, "", rec.Order)
	if err != nil {
		return nil, res, err
	}

	if opts.Validate {
		rep := collection.Validate(col)
		res.Warnings = append(res.Warnings, rep.WarningStrings()...)
		if err := rep.Err(); err != nil {
			return nil, res, err
		}
	}
	return col, res, nil
}

// WriteFile encodes col and writes it to path.
func WriteFile(col *collection.Collection, outPath string) error {
	data, err := col.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", outPath)
	}
	return nil
}

type builder struct {
	res *BuildResult
}

// readChildren assembles the child nodes of one directory in exactly the
// order sequence from its index record. rel is the directory's slash path
// relative to the collection root, used only in diagnostics.
func (b *builder) readChildren(dir, rel string, order []string) ([]*collection.Node, error) {
	// Non-nil even when empty: an empty order list still means "item
	// array present" on the rebuilt node.
	nodes := make([]*collection.Node, 0, len(order))

	for _, name := range order {
		// Order entries get joined onto filesystem paths; a corrupted or
		// hostile index must not escape the collection directory.
		if err := errors.ValidateEntryName(name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "%s: bad order entry", b.at(rel))
		}

		full := filepath.Join(dir, name)
		fi, err := os.Stat(full)
		if os.IsNotExist(err) {
			b.warnf("%s: entry %q referenced in order does not exist on disk; omitted", b.at(rel), name)
			continue
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", full)
		}

		var node *collection.Node
		if fi.IsDir() {
			node, err = b.readFolder(full, path.Join(rel, name))
		} else {
			node, err = b.readLeaf(full)
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		b.res.ItemsProcessed++
	}

	b.checkUnreferenced(dir, rel, order)
	return nodes, nil
}

func (b *builder) readFolder(dir, rel string) (*collection.Node, error) {
	rec, err := readIndex(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, err
	}
	if rec.Meta.Kind != MetaFolder {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"%s: index has kind %q, want %q", dir, rec.Meta.Kind, MetaFolder)
	}

	node := &collection.Node{
		Kind:        collection.KindFolder,
		Name:        rec.Name,
		Description: rec.Description,
		Variable:    rec.Variable,
		Event:       rec.Event,
		Auth:        rec.Auth,
		Request:     rec.Request,
		Response:    rec.Response,
		Ambiguous:   len(rec.Request) > 0,
	}
	node.Children, err = b.readChildren(dir, rel, rec.Order)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (b *builder) readLeaf(file string) (*collection.Node, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", file)
	}

	var rec LeafRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode %s", file)
	}
	if rec.Meta.Kind != MetaRequest && rec.Meta.Kind != legacyMetaLeaf {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"%s: record has kind %q, want %q", file, rec.Meta.Kind, MetaRequest)
	}

	return &collection.Node{
		Kind:        collection.KindRequest,
		Name:        rec.Name,
		Description: rec.Description,
		Variable:    rec.Variable,
		Event:       rec.Event,
		Auth:        rec.Auth,
		Request:     rec.Request,
		Response:    rec.Response,
	}, nil
}

// checkUnreferenced warns about entries sitting in the directory that the
// index order never mentions. They are ignored, not deleted: the on-disk
// tree is owned by the user between operations.
func (b *builder) checkUnreferenced(dir, rel string, order []string) {
	listed, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	referenced := make(map[string]struct{}, len(order))
	for _, name := range order {
		referenced[name] = struct{}{}
	}
	for _, entry := range listed {
		name := entry.Name()
		if name == IndexFile {
			continue
		}
		if _, ok := referenced[name]; !ok {
			b.warnf("%s: entry %q is not referenced in index order; ignored", b.at(rel), name)
		}
	}
}

func (b *builder) warnf(format string, args ...any) {
	b.res.Warnings = append(b.res.Warnings, fmt.Sprintf(format, args...))
}

// at names a directory for diagnostics; the collection root has no relative
// path of its own.
func (b *builder) at(rel string) string {
	if rel == "" {
		return "collection root"
	}
	return rel
}

func readIndex(file string) (*IndexRecord, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "missing index record %s", file)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", file)
	}

	var rec IndexRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode %s", file)
	}
	return &rec, nil
}
