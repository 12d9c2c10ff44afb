package collection

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDeterministic(t *testing.T) {
	col, err := Parse([]byte(minimalDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	a, err := col.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	b, err := col.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Encode is not deterministic")
	}

	if !bytes.HasSuffix(a, []byte("\n")) {
		t.Error("Encode output should end with a newline")
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	doc := `{
  "info": {"_postman_id": "abc-123", "name": "Shop API", "schema": "v2.1.0"},
  "item": [
    {"name": "Orders", "auth": {"type": "apikey"}, "item": [
      {"name": "Create", "request": {"method": "POST", "url": "http://x/orders", "body": {"mode": "raw", "raw": "{\"qty\": 2}"}}, "response": [{"name": "ok", "code": 200}]},
      {"name": "List", "request": {"method": "GET", "url": "http://x/orders?page=1&limit=10"}}
    ]},
    {"name": "Ping", "request": {"method": "GET", "url": "http://x/ping"}}
  ],
  "variable": [{"key": "host", "value": "x"}]
}`

	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	encoded, err := col.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Query parameters must not be HTML-escaped.
	if !bytes.Contains(encoded, []byte("page=1&limit=10")) {
		t.Error("Encode should not HTML-escape URL payload content")
	}

	again, err := Parse(encoded)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}

	reencoded, err := again.Encode()
	if err != nil {
		t.Fatalf("re-Encode failed: %v", err)
	}
	if !bytes.Equal(encoded, reencoded) {
		t.Errorf("encode → parse → encode is not stable:\nfirst:\n%s\nsecond:\n%s", encoded, reencoded)
	}

	// Structure survives: same names, same order, same payload content.
	if len(again.Items) != 2 || again.Items[0].Name != "Orders" || again.Items[1].Name != "Ping" {
		t.Fatalf("item order not preserved: %+v", again.Items)
	}
	create := again.Items[0].Children[0]
	if !strings.Contains(string(create.Request), `\"qty\": 2`) {
		t.Errorf("request body not preserved: %s", create.Request)
	}
	if !strings.Contains(string(create.Response), `"code": 200`) {
		t.Errorf("response examples not preserved: %s", create.Response)
	}
}

func TestEncodeAmbiguousNodeKeepsRequest(t *testing.T) {
	doc := `{"info": {"name": "T", "schema": "v2.1.0"}, "item": [{"name": "both", "item": [], "request": {"method": "GET"}}]}`
	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	encoded, err := col.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Contains(encoded, []byte(`"request"`)) {
		t.Error("ambiguous node's request payload was dropped on encode")
	}
	if !bytes.Contains(encoded, []byte(`"item"`)) {
		t.Error("ambiguous node's item list was dropped on encode")
	}
}

func TestEncodeEmptyFolder(t *testing.T) {
	doc := `{"info": {"name": "T", "schema": "v2.1.0"}, "item": [{"name": "Empty", "item": []}]}`
	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	encoded, err := col.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	again, err := Parse(encoded)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}
	if again.Items[0].Kind != KindFolder {
		t.Errorf("empty folder decoded as %v, want KindFolder", again.Items[0].Kind)
	}
}
