// Package grid implements the in-memory grid document: a rectangular table
// of string cells, the file it is backed by, and CSV load/save.
//
// The document is the single source of truth for cell contents. Views
// render from it and commit edits through SetCell; every successful
// mutation is published on the event bus so observers can refresh.
//
// A Document is not safe for concurrent use. The application event loop
// owns it and performs every operation on one goroutine.
package grid
