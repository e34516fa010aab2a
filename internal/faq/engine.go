package faq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/knowledge"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/metrics"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/rules"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/searcher"
)

const (
	// DefaultThreshold is the acceptance threshold used when callers have no preference
	DefaultThreshold = 0.60

	// DefaultTopK is the default number of suggestions on a miss
	DefaultTopK = 3

	// MaxTopK caps the number of suggestions
	MaxTopK = 10

	// sampleQuestions is how many questions Status reports
	sampleQuestions = 8

	closePollInterval = 5 * time.Millisecond
)

var (
	// ErrReloadInProgress is returned when a rebuild is already running
	ErrReloadInProgress = errors.New("knowledge reload already in progress")

	// ErrNoSource is returned by Reload and Watch when no path was ever loaded
	ErrNoSource = errors.New("no knowledge path loaded")

	// ErrEngineClosed is returned by loads after Close
	ErrEngineClosed = errors.New("faq engine closed")
)

// Options configures an Engine
type Options struct {
	Logger zerolog.Logger

	// Capabilities decides which backends may be built
	Capabilities searcher.Capabilities

	// Index tunes index construction
	Index searcher.Options

	// Debounce is the quiet period Watch waits for after a file change
	Debounce time.Duration
}

// snapshot is everything a query needs, swapped as one unit
type snapshot struct {
	index     *searcher.Index
	router    *rules.RoomRouter
	source    string
	dbVersion string
	roomTypes []string
	loadedAt  time.Time
}

// Engine answers queries against the current knowledge snapshot
type Engine struct {
	opts   Options
	logger zerolog.Logger

	current atomic.Pointer[snapshot]
	reload  reloadLock
	closed  atomic.Bool

	pathMu sync.RWMutex
	path   string

	closeWg sync.WaitGroup
}

// NewEngine creates an engine with no knowledge loaded
func NewEngine(opts Options) *Engine {
	opts.Index.Logger = opts.Logger
	return &Engine{
		opts:   opts,
		logger: opts.Logger.With().Str("component", "faq").Logger(),
	}
}

// Load reads the document at path, builds a new index and swaps it in.
// The path is remembered for Reload and Watch.
func (e *Engine) Load(ctx context.Context, path string) error {
	if !e.reload.TryAcquire() {
		return ErrReloadInProgress
	}
	defer e.reload.Release()

	if e.closed.Load() {
		return ErrEngineClosed
	}

	doc, err := knowledge.Load(path)
	if err != nil {
		metrics.RecordBuild("none", "load_error", 0, 0)
		return err
	}

	if err := e.install(ctx, doc, path); err != nil {
		return err
	}

	e.pathMu.Lock()
	e.path = path
	e.pathMu.Unlock()
	return nil
}

// LoadDocument builds a new index from an in-memory document and swaps it in
func (e *Engine) LoadDocument(ctx context.Context, doc *knowledge.Document) error {
	if !e.reload.TryAcquire() {
		return ErrReloadInProgress
	}
	defer e.reload.Release()

	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.install(ctx, doc, "")
}

// Reload rebuilds from the last loaded path
func (e *Engine) Reload(ctx context.Context) error {
	path := e.Path()
	if path == "" {
		return ErrNoSource
	}
	return e.Load(ctx, path)
}

// Path returns the last successfully loaded path
func (e *Engine) Path() string {
	e.pathMu.RLock()
	defer e.pathMu.RUnlock()
	return e.path
}

// Ready reports whether a snapshot is installed
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// install must be called with the reload lock held
func (e *Engine) install(ctx context.Context, doc *knowledge.Document, source string) error {
	if doc == nil {
		doc = &knowledge.Document{}
	}

	entries, roomTypes := knowledge.Flatten(doc)

	idx, err := searcher.Build(ctx, entries, e.opts.Capabilities, e.opts.Index)
	if err != nil {
		metrics.RecordBuild("none", "error", 0, len(entries))
		return fmt.Errorf("build index: %w", err)
	}
	stats := idx.Stats()
	metrics.RecordBuild(string(stats.Backend), "success", stats.BuildDuration.Seconds(), stats.Entries)

	dbVersion := doc.DBVersion.String()
	if dbVersion != "" {
		if _, err := doc.Version(); err != nil {
			e.logger.Warn().Err(err).Msg("db_version is not a semantic version")
		}
	}

	next := &snapshot{
		index:     idx,
		router:    rules.NewRoomRouter(doc.Rooms),
		source:    source,
		dbVersion: dbVersion,
		roomTypes: roomTypes,
		loadedAt:  time.Now(),
	}

	if prev := e.current.Swap(next); prev != nil {
		e.retire(prev)
	}

	e.logger.Info().
		Str("source", source).
		Str("backend", string(stats.Backend)).
		Int("entries", stats.Entries).
		Int("room_types", len(roomTypes)).
		Str("db_version", dbVersion).
		Msg("knowledge loaded")
	return nil
}

// retire closes an old snapshot once its in-flight queries finish
func (e *Engine) retire(old *snapshot) {
	e.closeWg.Add(1)
	go func() {
		defer e.closeWg.Done()
		if err := old.index.Close(); err != nil {
			e.logger.Warn().Err(err).Msg("failed to close retired index")
		}
	}()
}

// Close releases the current index and waits for retired ones.
// A rebuild already running finishes first so its index is released too.
// Later loads fail with ErrEngineClosed.
func (e *Engine) Close() error {
	e.closed.Store(true)
	for !e.reload.TryAcquire() {
		time.Sleep(closePollInterval)
	}
	defer e.reload.Release()

	var err error
	if cur := e.current.Swap(nil); cur != nil {
		err = cur.index.Close()
	}
	e.closeWg.Wait()
	return err
}
