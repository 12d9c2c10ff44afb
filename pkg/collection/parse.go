package collection

import (
	"encoding/json"
	"os"

	"github.com/colsplit/colsplit/pkg/errors"
)

// collectionJSON is the wire form of a collection document.
// Item is a pointer so an absent array is distinguishable from an empty one.
type collectionJSON struct {
	Info     Info            `json:"info"`
	Item     *[]itemJSON     `json:"item,omitempty"`
	Variable json.RawMessage `json:"variable,omitempty"`
	Event    json.RawMessage `json:"event,omitempty"`
	Auth     json.RawMessage `json:"auth,omitempty"`
}

// itemJSON is the wire form of one item node. Folder vs request is decided by
// which of Item and Request is present.
type itemJSON struct {
	Name        string          `json:"name"`
	Description json.RawMessage `json:"description,omitempty"`
	Item        *[]itemJSON     `json:"item,omitempty"`
	Request     json.RawMessage `json:"request,omitempty"`
	Response    json.RawMessage `json:"response,omitempty"`
	Variable    json.RawMessage `json:"variable,omitempty"`
	Event       json.RawMessage `json:"event,omitempty"`
	Auth        json.RawMessage `json:"auth,omitempty"`
}

// Parse decodes a collection document and computes each node's variant tag.
// Malformed JSON is fatal; structural problems (unclassifiable nodes, missing
// identity fields) are left for [Validate] to report in full.
func Parse(data []byte) (*Collection, error) {
	var doc collectionJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCollection, err, "decode collection JSON")
	}

	col := &Collection{
		Info:     doc.Info,
		Variable: doc.Variable,
		Event:    doc.Event,
		Auth:     doc.Auth,
	}
	if doc.Item != nil {
		col.Items = parseItems(*doc.Item)
	}
	return col, nil
}

// ParseFile reads and parses the collection document at path.
func ParseFile(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return Parse(data)
}

func parseItems(items []itemJSON) []*Node {
	nodes := make([]*Node, 0, len(items))
	for i := range items {
		nodes = append(nodes, parseItem(&items[i]))
	}
	return nodes
}

// parseItem classifies one wire item and converts it to a Node. The tag is
// computed here, once, and carried forward for every later consumer.
func parseItem(it *itemJSON) *Node {
	n := &Node{
		Name:        it.Name,
		Description: it.Description,
		Variable:    it.Variable,
		Event:       it.Event,
		Auth:        it.Auth,
		Request:     it.Request,
		Response:    it.Response,
	}

	switch {
	case it.Item != nil:
		n.Kind = KindFolder
		n.Children = parseItems(*it.Item)
		n.Ambiguous = len(it.Request) > 0
	case len(it.Request) > 0:
		n.Kind = KindRequest
	default:
		n.Kind = KindInvalid
	}
	return n
}
