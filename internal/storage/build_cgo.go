//go:build sqlite_cgo

package storage

// This file is compiled when building with the sqlite_cgo tag.
// go-sqlite3 only ships FTS5 when the fts5 tag is also set; without it the
// probe fails and the index falls back to the next backend.
//
// Build command:
//   CGO_ENABLED=1 go build -tags "sqlite_cgo,fts5" ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)
