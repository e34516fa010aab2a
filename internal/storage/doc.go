// Package storage provides the SQLite FTS5 lexical index behind the BM25
// backend.
//
// Every LexicalIndex owns a private in-memory database holding one FTS5 row
// per entry. Documents are stored pre-tokenized so that SQLite sees exactly
// the tokens produced by textnorm, and rowid is the entry position plus one.
//
// # Basic Usage
//
//	if err := storage.ProbeFTS5(ctx); err != nil {
//	    // FTS5 is not compiled into this build
//	}
//
//	idx, err := storage.NewLexicalIndex(ctx, [][]string{
//	    {"pool", "hours"},
//	    {"check", "in", "time"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer idx.Close()
//
//	scores, err := idx.Scores(ctx, []string{"pool"})
//	// scores[0] > 0, scores[1] == 0
//
// Scores are the negated FTS5 bm25() rank: positive, unbounded and higher is
// better. Rows that do not match any query token score 0.
//
// # Build Tags
//
// Pure Go Build (default):
//
//   - Uses modernc.org/sqlite driver
//
//   - FTS5 always available
//
//     CGO_ENABLED=0 go build
//
// CGO Build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires the fts5 tag for FTS5 support
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo,fts5"
package storage
