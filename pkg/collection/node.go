package collection

import "encoding/json"

// Kind discriminates the two node variants of a collection tree.
type Kind int

const (
	// KindInvalid marks a node that could not be classified: it carries
	// neither an item list nor a request payload. Validation rejects these.
	KindInvalid Kind = iota

	// KindFolder is a container node with an ordered list of children.
	KindFolder

	// KindRequest is a leaf node with an opaque request payload.
	KindRequest
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindRequest:
		return "request"
	default:
		return "invalid"
	}
}

// Node is one item of a collection tree, either a folder or a request.
// The variant is fixed in Kind at parse time; consumers must switch on it
// rather than probing field presence.
//
// Description, Variable, Event, and Auth are opaque payloads preserved
// byte-for-byte. Children is populated for folders, Request and Response for
// requests. An ambiguous source node (both "item" and "request" present) is
// tagged as a folder, keeps its Request payload for lossless round-trips,
// and has Ambiguous set.
type Node struct {
	Kind Kind
	Name string

	Description json.RawMessage
	Variable    json.RawMessage
	Event       json.RawMessage
	Auth        json.RawMessage

	// Folder fields. Children preserves source order; that order is
	// semantically significant and must survive every round trip.
	Children []*Node

	// Request fields.
	Request  json.RawMessage
	Response json.RawMessage

	// Ambiguous records that the source carried both an item list and a
	// request payload. Folder takes precedence; validation reports a warning.
	Ambiguous bool
}

// Info is the identity block of a collection.
type Info struct {
	PostmanID   string          `json:"_postman_id,omitempty"`
	Name        string          `json:"name"`
	Description json.RawMessage `json:"description,omitempty"`
	Schema      string          `json:"schema"`
}

// Collection is the root of a parsed collection document.
//
// Items is nil when the source document had no "item" array at all, and an
// empty non-nil slice when the array was present but empty; validation
// treats only the former as an error.
type Collection struct {
	Info     Info
	Variable json.RawMessage
	Event    json.RawMessage
	Auth     json.RawMessage
	Items    []*Node
}

// CountNodes returns the total number of folders and requests in the tree.
func (c *Collection) CountNodes() int {
	n := 0
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, node := range nodes {
			n++
			walk(node.Children)
		}
	}
	walk(c.Items)
	return n
}
