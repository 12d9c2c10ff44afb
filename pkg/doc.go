// Package pkg provides the core libraries for colsplit collection transcoding.
//
// # Overview
//
// Colsplit converts Postman collections between two equivalent forms: a
// single collection file and a directory tree of small JSON records. The
// pkg directory is organized by concern:
//
//  1. [collection] - Collection model, parsing, encoding, validation
//  2. [sanitize] - Filesystem-safe name cleaning and collision handling
//  3. [layout] - Split and build between the two forms
//  4. [render] - DOT, SVG and PNG views of the hierarchy
//  5. [cache] - File-based cache for rendered artifacts
//  6. [errors] - Structured error codes shared across packages
//
// # Architecture
//
// The typical data flow through colsplit:
//
//	collection file
//	         ↓
//	    [collection] package (parse + validate)
//	         ↓
//	    [sanitize] package (directory and file names)
//	         ↓
//	    [layout] package (split to tree / build from tree)
//	         ↓
//	    directory tree or rebuilt collection file
//
// Rendering branches off the parsed collection through [render], with
// [cache] keeping expensive Graphviz output between runs.
//
// # Quick Start
//
//	col, err := collection.ParseFile("orders.postman_collection.json")
//	if err != nil {
//	    return err
//	}
//	res, err := layout.Split(col, layout.SplitOptions{OutputDir: "."})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.OutputPath)
//
// Rebuilding is the inverse:
//
//	col, _, err := layout.Build(res.OutputPath, layout.BuildOptions{})
//	if err != nil {
//	    return err
//	}
//	err = layout.WriteFile(col, "orders.postman_collection.json")
package pkg
