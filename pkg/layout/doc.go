// Package layout implements the bidirectional transcoding between a parsed
// collection tree and its decomposed directory representation.
//
// # On-disk format
//
// A collection named "Shop API" with one folder and two requests decomposes
// into:
//
//	Shop API/
//	├── index.json          {meta:{kind:"collection"}, info:{...}, order:["Orders", "Ping.json"]}
//	├── Orders/
//	│   ├── index.json      {meta:{kind:"folder"}, name:"Orders", order:["Create.json"]}
//	│   └── Create.json     {meta:{kind:"request"}, name:"Create", request:{...}}
//	└── Ping.json           {meta:{kind:"request"}, name:"Ping", request:{...}}
//
// Every directory owns an index record whose order array is the single
// source of truth for child sequence. Directory listing order is never
// consulted: filesystem enumeration is platform-dependent and usually
// alphabetic, which would silently reorder collections.
//
// On-disk names are sanitized and uniquified per sibling scope by
// [github.com/colsplit/colsplit/pkg/sanitize]; the display name stored inside
// each record is the semantic identity and round-trips unchanged. The ".json"
// suffix on request files is cosmetic, appended after collision resolution.
//
// # Engines
//
// [Split] walks a validated tree depth-first and emits the directory
// structure. [Build] walks a directory structure and reassembles the tree in
// exact index order. Both run synchronously on the calling goroutine and
// issue I/O sequentially; two operations on different paths may run
// concurrently since no state is shared between calls.
//
// # Failure semantics
//
// Validation failures stop a split before any output is written. Mid-walk
// I/O failures abort with the offending path and leave already-written
// siblings in place; there is no rollback. During a build, an order entry
// with no matching file or directory is a warning and the slot is omitted;
// a missing or corrupt index record is fatal.
package layout
