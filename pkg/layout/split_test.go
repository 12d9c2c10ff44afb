package layout

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/colsplit/colsplit/pkg/collection"
	"github.com/colsplit/colsplit/pkg/errors"
)

func asValidationError(err error, target **collection.ValidationError) bool {
	return stderrors.As(err, target)
}

func mustParse(t *testing.T, doc string) *collection.Collection {
	t.Helper()
	col, err := collection.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return col
}

func readIndexRecord(t *testing.T, dir string) *IndexRecord {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var rec IndexRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	return &rec
}

func TestSplitMinimal(t *testing.T) {
	col := mustParse(t, `{
		"info": {"name": "T", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
		"item": [{"name": "Get", "request": {"method": "GET", "url": "http://x"}}]
	}`)

	out := t.TempDir()
	res, err := Split(col, SplitOptions{OutputDir: out})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if res.RootName != "T" {
		t.Errorf("RootName = %q, want %q", res.RootName, "T")
	}
	if res.FoldersCreated != 1 {
		t.Errorf("FoldersCreated = %d, want 1", res.FoldersCreated)
	}
	if res.FilesCreated != 2 {
		t.Errorf("FilesCreated = %d, want 2 (index + request)", res.FilesCreated)
	}

	rec := readIndexRecord(t, res.OutputPath)
	if rec.Meta.Kind != MetaCollection {
		t.Errorf("root meta kind = %q, want %q", rec.Meta.Kind, MetaCollection)
	}
	if len(rec.Order) != 1 || rec.Order[0] != "Get.json" {
		t.Errorf("Order = %v, want [Get.json]", rec.Order)
	}

	leafPath := filepath.Join(res.OutputPath, "Get.json")
	data, err := os.ReadFile(leafPath)
	if err != nil {
		t.Fatalf("request file missing: %v", err)
	}
	var leaf LeafRecord
	if err := json.Unmarshal(data, &leaf); err != nil {
		t.Fatalf("decode leaf: %v", err)
	}
	if leaf.Name != "Get" {
		t.Errorf("leaf Name = %q, want %q", leaf.Name, "Get")
	}
	if leaf.Meta.Kind != MetaRequest {
		t.Errorf("leaf meta kind = %q, want %q", leaf.Meta.Kind, MetaRequest)
	}
}

func TestSplitDuplicateSiblings(t *testing.T) {
	col := mustParse(t, `{
		"info": {"name": "T", "schema": "v2.1.0"},
		"item": [
			{"name": "Item", "request": {"method": "GET"}},
			{"name": "Item", "request": {"method": "POST"}}
		]
	}`)

	out := t.TempDir()
	res, err := Split(col, SplitOptions{OutputDir: out})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	rec := readIndexRecord(t, res.OutputPath)
	want := []string{"Item.json", "Item (1).json"}
	if len(rec.Order) != 2 || rec.Order[0] != want[0] || rec.Order[1] != want[1] {
		t.Errorf("Order = %v, want %v", rec.Order, want)
	}

	for _, name := range want {
		if _, err := os.Stat(filepath.Join(res.OutputPath, name)); err != nil {
			t.Errorf("expected file %q: %v", name, err)
		}
	}
}

func TestSplitScopeIsolation(t *testing.T) {
	// Two folders both containing a child named "v1": neither gets renamed,
	// because collision scopes never leak across nesting levels.
	col := mustParse(t, `{
		"info": {"name": "T", "schema": "v2.1.0"},
		"item": [
			{"name": "A", "item": [{"name": "v1", "item": []}]},
			{"name": "B", "item": [{"name": "v1", "item": []}]}
		]
	}`)

	out := t.TempDir()
	res, err := Split(col, SplitOptions{OutputDir: out})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	for _, dir := range []string{"A/v1", "B/v1"} {
		fi, err := os.Stat(filepath.Join(res.OutputPath, filepath.FromSlash(dir)))
		if err != nil || !fi.IsDir() {
			t.Errorf("expected directory %q: %v", dir, err)
		}
	}
}

func TestSplitFolderRecordKeepsDisplayName(t *testing.T) {
	col := mustParse(t, `{
		"info": {"name": "T", "schema": "v2.1.0"},
		"item": [{"name": "2nd: Folder", "item": []}]
	}`)

	out := t.TempDir()
	res, err := Split(col, SplitOptions{OutputDir: out})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	// On-disk name is sanitized; the record keeps the semantic identity.
	dir := filepath.Join(res.OutputPath, "_2nd Folder")
	rec := readIndexRecord(t, dir)
	if rec.Name != "2nd: Folder" {
		t.Errorf("folder record name = %q, want %q", rec.Name, "2nd: Folder")
	}
	if rec.Meta.Kind != MetaFolder {
		t.Errorf("folder meta kind = %q, want %q", rec.Meta.Kind, MetaFolder)
	}
}

func TestSplitDryRun(t *testing.T) {
	col := mustParse(t, `{
		"info": {"name": "T", "schema": "v2.1.0"},
		"item": [
			{"name": "F", "item": [{"name": "R", "request": {"method": "GET"}}]}
		]
	}`)

	out := t.TempDir()
	res, err := Split(col, SplitOptions{OutputDir: out, DryRun: true})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	// Counts reflect the full walk: root + folder, two indexes + one request.
	if res.FoldersCreated != 2 {
		t.Errorf("FoldersCreated = %d, want 2", res.FoldersCreated)
	}
	if res.FilesCreated != 3 {
		t.Errorf("FilesCreated = %d, want 3", res.FilesCreated)
	}

	if _, err := os.Stat(res.OutputPath); !os.IsNotExist(err) {
		t.Errorf("dry run must not create output, stat err = %v", err)
	}
}

func TestSplitOverwrite(t *testing.T) {
	col := mustParse(t, `{"info": {"name": "T", "schema": "v2.1.0"}, "item": []}`)
	out := t.TempDir()

	if _, err := Split(col, SplitOptions{OutputDir: out}); err != nil {
		t.Fatalf("first Split failed: %v", err)
	}

	// Plant a file that must disappear when the root is replaced.
	stale := filepath.Join(out, "T", "stale.json")
	if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Split(col, SplitOptions{OutputDir: out})
	if !errors.Is(err, errors.ErrCodeExists) {
		t.Fatalf("second Split error = %v, want code %s", err, errors.ErrCodeExists)
	}

	if _, err := Split(col, SplitOptions{OutputDir: out, Overwrite: true}); err != nil {
		t.Fatalf("Split with Overwrite failed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("overwrite should replace the output root, stale file survived")
	}
}

func TestSplitValidationGate(t *testing.T) {
	col := mustParse(t, `{"info": {}, "item": [{"name": "mystery"}]}`)

	out := t.TempDir()
	_, err := Split(col, SplitOptions{OutputDir: out})
	if err == nil {
		t.Fatal("Split of an invalid collection should fail")
	}

	var verr *collection.ValidationError
	if !asValidationError(err, &verr) {
		t.Fatalf("error type = %T, want *collection.ValidationError", err)
	}
	// All three problems in one pass: missing name, missing schema, bad node.
	if len(verr.Issues) != 3 {
		t.Errorf("len(Issues) = %d, want 3: %v", len(verr.Issues), verr.Issues)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("no output should be written when validation fails, found %v", entries)
	}
}

func TestSplitNestedOrder(t *testing.T) {
	col := mustParse(t, `{
		"info": {"name": "T", "schema": "v2.1.0"},
		"item": [
			{"name": "zeta", "request": {"method": "GET"}},
			{"name": "alpha", "item": []},
			{"name": "mid", "request": {"method": "GET"}}
		]
	}`)

	out := t.TempDir()
	res, err := Split(col, SplitOptions{OutputDir: out})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	rec := readIndexRecord(t, res.OutputPath)
	want := []string{"zeta.json", "alpha", "mid.json"}
	if len(rec.Order) != len(want) {
		t.Fatalf("Order = %v, want %v", rec.Order, want)
	}
	for i := range want {
		if rec.Order[i] != want[i] {
			t.Errorf("Order[%d] = %q, want %q (source order, not alphabetical)", i, rec.Order[i], want[i])
		}
	}
}
