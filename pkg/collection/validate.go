package collection

import (
	"fmt"
	"strings"
)

// SchemaFamily is the major schema version family this tool understands.
// Collections declaring another family still transcode (the engines never
// interpret payloads), so a mismatch is a warning rather than an error.
const SchemaFamily = "v2"

// Issue is one validation finding, tagged with the positional path of the
// offending node (e.g. "root → item[2] → item[0]").
type Issue struct {
	Path    string
	Message string
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Report holds every error and warning found in one validation pass.
// Validation collects rather than short-circuits, so a single run surfaces
// the complete list of problems.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

// Valid reports whether the collection satisfies the structural contract.
// Warnings do not affect validity.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a valid report, otherwise a *ValidationError carrying
// every collected error.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Issues: r.Errors}
}

// WarningStrings renders the warnings for result reporting.
func (r *Report) WarningStrings() []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, w.String())
	}
	return out
}

// ValidationError aggregates the full error list of a failed validation.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("collection is not valid (%d problem(s)): %s",
		len(e.Issues), strings.Join(msgs, "; "))
}

// Validate checks the structural contract of a parsed collection tree:
// identity fields on the root, a present item array, and exactly one variant
// per node. It is a pure function with no I/O and always returns a report;
// callers gate on [Report.Err].
func Validate(c *Collection) *Report {
	r := &Report{}

	const root = "root"
	if c.Info.Name == "" {
		r.errorf(root, "info.name is required and must be non-empty")
	}
	if c.Info.Schema == "" {
		r.errorf(root, "info.schema is required and must be non-empty")
	} else if !strings.Contains(c.Info.Schema, SchemaFamily) {
		r.warnf(root, "schema %q is not in the %s family", c.Info.Schema, SchemaFamily)
	}

	if c.Items == nil {
		r.errorf(root, "item array is required")
	}

	validateNodes(r, root, c.Items)
	return r
}

func validateNodes(r *Report, parent string, nodes []*Node) {
	for i, n := range nodes {
		path := fmt.Sprintf("%s → item[%d]", parent, i)
		switch n.Kind {
		case KindFolder:
			if n.Ambiguous {
				r.warnf(path, "node %q has both an item list and a request payload; treating it as a folder", n.Name)
			}
			validateNodes(r, path, n.Children)
		case KindRequest:
			// Leaf; nothing below it.
		default:
			r.errorf(path, "node %q has neither an item list nor a request payload", n.Name)
		}
	}
}

func (r *Report) errorf(path, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}
