package embedder

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkLocalEmbed(b *testing.B) {
	p := NewLocalProvider(0)
	ctx := context.Background()
	texts := []string{
		"pool",
		"what time is check in and can I check in early",
		"tell me about the deluxe king room with ocean view, balcony and a minibar stocked daily",
	}

	for _, text := range texts {
		b.Run(fmt.Sprintf("len=%d", len(text)), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = p.Embed(ctx, text)
			}
		})
	}
}

func BenchmarkCache(b *testing.B) {
	cache := NewCache(10000)
	vec := make([]float32, LocalDimension)

	for i := 0; i < 1000; i++ {
		cache.Set(fmt.Sprintf("hash-%d", i), vec)
	}

	b.Run("get-hit", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = cache.Get(fmt.Sprintf("hash-%d", i%1000))
		}
	})

	b.Run("get-miss", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = cache.Get(fmt.Sprintf("nonexistent-%d", i))
		}
	})
}
