package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	// ErrFTS5Unavailable is returned when the linked SQLite lacks the fts5 module
	ErrFTS5Unavailable = errors.New("sqlite fts5 module unavailable")

	// ErrClosed is returned when scoring against a closed index
	ErrClosed = errors.New("lexical index closed")
)

const lexicalSchema = `
CREATE VIRTUAL TABLE entries_fts USING fts5(
    document,
    tokenize = 'unicode61'
);
`

// dbSeq keeps in-memory database names unique within the process
var dbSeq atomic.Uint64

// LexicalIndex is an immutable FTS5 table of tokenized entry documents
type LexicalIndex struct {
	db     *sql.DB
	size   int
	closed atomic.Bool
}

// openMemoryDatabase opens a private in-memory SQLite database
func openMemoryDatabase(ctx context.Context) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:faq-lexical-%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, err
	}

	// A single long-lived connection keeps the memory database alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ProbeFTS5 reports whether the linked SQLite driver can create FTS5 tables
func ProbeFTS5(ctx context.Context) error {
	db, err := openMemoryDatabase(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFTS5Unavailable, err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, `CREATE VIRTUAL TABLE probe USING fts5(x)`); err != nil {
		return fmt.Errorf("%w: %v", ErrFTS5Unavailable, err)
	}
	return nil
}

// NewLexicalIndex builds an FTS5 table with one row per document.
// docs[i] holds the tokens of entry i.
func NewLexicalIndex(ctx context.Context, docs [][]string) (*LexicalIndex, error) {
	db, err := openMemoryDatabase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexical database: %w", err)
	}

	if _, err := db.ExecContext(ctx, lexicalSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrFTS5Unavailable, err)
	}

	if err := insertDocuments(ctx, db, docs); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &LexicalIndex{db: db, size: len(docs)}, nil
}

func insertDocuments(ctx context.Context, db *sql.DB, docs [][]string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries_fts(rowid, document) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, tokens := range docs {
		if _, err := stmt.ExecContext(ctx, int64(i+1), strings.Join(tokens, " ")); err != nil {
			return fmt.Errorf("failed to insert document %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Len returns the number of indexed documents
func (l *LexicalIndex) Len() int {
	return l.size
}

// Scores returns one BM25 score per document, aligned by position.
// Documents sharing no token with the query score 0.
func (l *LexicalIndex) Scores(ctx context.Context, tokens []string) ([]float64, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}

	scores := make([]float64, l.size)
	match := buildMatchExpr(tokens)
	if match == "" || l.size == 0 {
		return scores, nil
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT rowid, -bm25(entries_fts) FROM entries_fts WHERE entries_fts MATCH ?`, match)
	if err != nil {
		return nil, fmt.Errorf("failed to execute FTS search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			rowid int64
			score float64
		)
		if err := rows.Scan(&rowid, &score); err != nil {
			return nil, err
		}
		if rowid >= 1 && int(rowid) <= l.size && score > 0 {
			scores[rowid-1] = score
		}
	}

	return scores, rows.Err()
}

// Close releases the in-memory database
func (l *LexicalIndex) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.db.Close()
}

// buildMatchExpr ORs the distinct tokens as quoted FTS5 strings
func buildMatchExpr(tokens []string) string {
	seen := make(map[string]bool, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, `"`+strings.ReplaceAll(t, `"`, `""`)+`"`)
	}
	return strings.Join(terms, " OR ")
}
