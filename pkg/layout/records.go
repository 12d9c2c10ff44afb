package layout

import (
	"bytes"
	"encoding/json"

	"github.com/colsplit/colsplit/pkg/collection"
)

const (
	// IndexFile is the per-directory metadata record.
	IndexFile = "index.json"

	// LeafExt is the suffix appended to request file names after collision
	// resolution.
	LeafExt = ".json"
)

// Meta kinds written by the splitter. The reader additionally accepts the
// legacy spellings "root" and "leaf" produced by earlier layouts.
const (
	MetaCollection = "collection"
	MetaFolder     = "folder"
	MetaRequest    = "request"

	legacyMetaRoot = "root"
	legacyMetaLeaf = "leaf"
)

// Meta identifies what a record describes and where it sits relative to the
// collection root. Paths use forward slashes on every platform.
type Meta struct {
	Kind       string `json:"kind"`
	ParentPath string `json:"parent_path,omitempty"` // folder records: path of the containing directory
	FolderPath string `json:"folder_path,omitempty"` // request records: path of the containing directory
}

// IndexRecord is the index.json of a directory. The collection root carries
// Info; folder directories carry the original display Name instead. Request
// and Response are only present for ambiguous folders that also carried a
// request payload in the source document.
type IndexRecord struct {
	Meta        Meta             `json:"meta"`
	Info        *collection.Info `json:"info,omitempty"`
	Name        string           `json:"name,omitempty"`
	Description json.RawMessage  `json:"description,omitempty"`
	Variable    json.RawMessage  `json:"variable,omitempty"`
	Event       json.RawMessage  `json:"event,omitempty"`
	Auth        json.RawMessage  `json:"auth,omitempty"`
	Request     json.RawMessage  `json:"request,omitempty"`
	Response    json.RawMessage  `json:"response,omitempty"`

	// Order is the authoritative child sequence, referencing children by
	// their on-disk names.
	Order []string `json:"order"`
}

// LeafRecord is the file written for one request node.
type LeafRecord struct {
	Meta        Meta            `json:"meta"`
	Name        string          `json:"name"`
	Description json.RawMessage `json:"description,omitempty"`
	Variable    json.RawMessage `json:"variable,omitempty"`
	Event       json.RawMessage `json:"event,omitempty"`
	Auth        json.RawMessage `json:"auth,omitempty"`
	Request     json.RawMessage `json:"request"`
	Response    json.RawMessage `json:"response,omitempty"`
}

// encodeRecord renders a record the same way collection documents are
// encoded: two-space indent, no HTML escaping, trailing newline. Stable
// formatting keeps the decomposed files diff-friendly.
func encodeRecord(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
