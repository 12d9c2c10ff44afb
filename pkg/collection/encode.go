package collection

import (
	"bytes"
	"encoding/json"

	"github.com/colsplit/colsplit/pkg/errors"
)

// Encode renders the collection back into its JSON document form with
// two-space indentation and a trailing newline. Encoding is deterministic:
// the same tree always produces the same bytes, and opaque payloads are
// embedded exactly as parsed. HTML escaping is disabled so URLs inside
// request payloads stay readable.
func (c *Collection) Encode() ([]byte, error) {
	doc := collectionJSON{
		Info:     c.Info,
		Variable: c.Variable,
		Event:    c.Event,
		Auth:     c.Auth,
	}
	items := encodeItems(c.Items)
	doc.Item = &items

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode collection")
	}
	return buf.Bytes(), nil
}

func encodeItems(nodes []*Node) []itemJSON {
	items := make([]itemJSON, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, encodeItem(n))
	}
	return items
}

func encodeItem(n *Node) itemJSON {
	it := itemJSON{
		Name:        n.Name,
		Description: n.Description,
		Variable:    n.Variable,
		Event:       n.Event,
		Auth:        n.Auth,
	}

	if n.Kind == KindFolder {
		children := encodeItems(n.Children)
		it.Item = &children
		// An ambiguous node keeps its request payload so nothing is lost.
		it.Request = n.Request
		it.Response = n.Response
	} else {
		it.Request = n.Request
		it.Response = n.Response
	}
	return it
}
