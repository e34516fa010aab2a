package searcher

import (
	"context"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/storage"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/textnorm"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// bm25Scorer delegates to an FTS5 table and rescales by the per-query spread
type bm25Scorer struct {
	lex *storage.LexicalIndex
}

func newBM25Scorer(ctx context.Context, entries []types.Entry) (*bm25Scorer, error) {
	docs := make([][]string, len(entries))
	for i, e := range entries {
		docs[i] = textnorm.Tokenize(e.Document())
	}

	lex, err := storage.NewLexicalIndex(ctx, docs)
	if err != nil {
		return nil, err
	}
	return &bm25Scorer{lex: lex}, nil
}

func (b *bm25Scorer) raw(ctx context.Context, query string) ([]float64, error) {
	return b.lex.Scores(ctx, textnorm.Tokenize(query))
}

func (b *bm25Scorer) normalize(raw []float64) []float64 {
	return minMaxNormalize(raw)
}

func (b *bm25Scorer) close() error {
	return b.lex.Close()
}
