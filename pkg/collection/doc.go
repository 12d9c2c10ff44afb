// Package collection provides the in-memory model of a Postman collection
// and the parsing, encoding, and structural validation around it.
//
// # Overview
//
// A collection is a tree: the root carries identity information (name,
// schema, optional id and description) and collection-wide metadata, and its
// items are [Node] values that are either folders (ordered child lists) or
// requests (an opaque request payload plus optional response examples).
//
// The model is deliberately shallow. Everything the transcoding engines do
// not need to understand — request bodies, auth blocks, scripts, variables,
// response examples — is carried as [encoding/json.RawMessage] and passes
// through untouched. Correctness depends on order and names, not on the
// internal shape of those payloads.
//
// # Tagged nodes
//
// Each node's variant is computed exactly once, during parsing, and stored in
// [Node.Kind]. A node with an "item" list is a folder, a node with a
// "request" payload is a request. Nodes carrying both are tagged as folders
// and flagged [Node.Ambiguous]; nodes carrying neither are [KindInvalid] and
// rejected by validation. Consumers switch on the tag instead of re-probing
// field presence.
//
// # Validation
//
// [Validate] is a pure function over a parsed tree. It collects every
// problem instead of stopping at the first, tagging each [Issue] with a
// positional path such as "root → item[2] → item[0]". Errors gate the
// split and build engines; warnings are reported alongside success.
//
// # Lifecycle
//
// Trees are transient: built fresh from a JSON document or a directory scan,
// used for one operation, and discarded. Nothing in this package caches
// state between calls.
package collection
