package collection

import (
	"strings"
	"testing"
)

func TestValidateOK(t *testing.T) {
	col, err := Parse([]byte(minimalDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := Validate(col)
	if !r.Valid() {
		t.Fatalf("Valid() = false, errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", r.Warnings)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	// Missing both info.name and info.schema must yield two distinct errors,
	// not just the first one found.
	col, err := Parse([]byte(`{"info": {}, "item": []}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := Validate(col)
	if len(r.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2: %v", len(r.Errors), r.Errors)
	}

	joined := r.Err().Error()
	if !strings.Contains(joined, "info.name") || !strings.Contains(joined, "info.schema") {
		t.Errorf("error should name both missing fields: %s", joined)
	}
}

func TestValidateMissingItemArray(t *testing.T) {
	col, err := Parse([]byte(`{"info": {"name": "T", "schema": "v2.1.0"}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := Validate(col)
	if r.Valid() {
		t.Fatal("collection without an item array should be invalid")
	}
	if !strings.Contains(r.Errors[0].Message, "item array") {
		t.Errorf("unexpected error: %v", r.Errors[0])
	}
}

func TestValidateSchemaFamilyWarning(t *testing.T) {
	col, err := Parse([]byte(`{"info": {"name": "T", "schema": "https://schema.getpostman.com/json/collection/v1.0.0/collection.json"}, "item": []}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := Validate(col)
	if !r.Valid() {
		t.Fatalf("schema family mismatch must not be an error: %v", r.Errors)
	}
	if len(r.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1: %v", len(r.Warnings), r.Warnings)
	}
	if !strings.Contains(r.Warnings[0].Message, "v2") {
		t.Errorf("warning should name the expected family: %v", r.Warnings[0])
	}
}

func TestValidateNodeIssuesCarryPaths(t *testing.T) {
	doc := `{
  "info": {"name": "T", "schema": "v2.1.0"},
  "item": [
    {"name": "good", "request": {"method": "GET"}},
    {"name": "outer", "item": [
      {"name": "bad"}
    ]}
  ]
}`
	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := Validate(col)
	if len(r.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1: %v", len(r.Errors), r.Errors)
	}

	wantPath := "root → item[1] → item[0]"
	if r.Errors[0].Path != wantPath {
		t.Errorf("Path = %q, want %q", r.Errors[0].Path, wantPath)
	}
}

func TestValidateAmbiguousNodeWarns(t *testing.T) {
	doc := `{
  "info": {"name": "T", "schema": "v2.1.0"},
  "item": [
    {"name": "both", "item": [], "request": {"method": "GET"}}
  ]
}`
	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := Validate(col)
	if !r.Valid() {
		t.Fatalf("ambiguous node must not be an error: %v", r.Errors)
	}
	if len(r.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1: %v", len(r.Warnings), r.Warnings)
	}
	if !strings.Contains(r.Warnings[0].Message, "folder") {
		t.Errorf("warning should state the folder precedence: %v", r.Warnings[0])
	}
	if r.Warnings[0].Path != "root → item[0]" {
		t.Errorf("Path = %q, want %q", r.Warnings[0].Path, "root → item[0]")
	}
}
