//go:build !sqlite_cgo

package storage

// This file is compiled by default. modernc.org/sqlite is a pure Go
// translation of SQLite and always includes FTS5.
//
// Build command:
//   CGO_ENABLED=0 go build ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
