package embedder

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/textnorm"
)

// LocalModel names the hashing embedding scheme
const LocalModel = "hashing-bigram-384"

// LocalProvider embeds text offline by feature hashing unigrams and bigrams
// into a fixed number of signed buckets. It is deterministic and needs no model files.
type LocalProvider struct {
	dimension int
}

// NewLocalProvider creates a local hashing embedder. A non-positive dimension uses LocalDimension.
func NewLocalProvider(dimension int) *LocalProvider {
	if dimension <= 0 {
		dimension = LocalDimension
	}
	return &LocalProvider{dimension: dimension}
}

func (l *LocalProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.hash(text), nil
}

func (l *LocalProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ValidateBatch(texts, 0); err != nil {
		return nil, err
	}

	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vecs[i] = l.hash(text)
	}
	return vecs, nil
}

func (l *LocalProvider) hash(text string) []float32 {
	counts := make([]float64, l.dimension)
	tokens := textnorm.Tokenize(text)

	add := func(feature string, weight float64) {
		h := fnv.New64a()
		_, _ = h.Write([]byte(feature))
		sum := h.Sum64()

		bucket := int(sum % uint64(l.dimension))
		if sum&(1<<63) != 0 {
			weight = -weight
		}
		counts[bucket] += weight
	}

	for i, tok := range tokens {
		add(tok, 1)
		if i > 0 {
			add(tokens[i-1]+" "+tok, 0.5)
		}
	}

	vec := make([]float32, l.dimension)
	for i, c := range counts {
		// sublinear damping keeps repeated words from dominating
		if c > 0 {
			vec[i] = float32(1 + math.Log(c))
		} else if c < 0 {
			vec[i] = -float32(1 + math.Log(-c))
		}
	}
	return NormalizeVector(vec)
}

func (l *LocalProvider) Dimension() int {
	return l.dimension
}

func (l *LocalProvider) Provider() string {
	return ProviderLocal
}

func (l *LocalProvider) Model() string {
	return LocalModel
}

func (l *LocalProvider) Close() error {
	return nil
}
