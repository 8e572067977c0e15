package lexical

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The lexical embedder is a placeholder fingerprint, not a semantic model.
// These tests pin down its determinism and shape, which is all the
// retrieval pipeline relies on.

func TestEmbed_Deterministic(t *testing.T) {
	svc := NewEmbeddingService(64)
	ctx := context.Background()

	a, err := svc.Embed(ctx, "rice grows in kharif season")
	require.NoError(t, err)
	b, err := svc.Embed(ctx, "rice grows in kharif season")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestEmbed_TokenLengthWeights(t *testing.T) {
	svc := NewEmbeddingService(8)

	vec, err := svc.Embed(context.Background(), "ab cdef")
	require.NoError(t, err)

	assert.InDelta(t, 0.2, vec[0], 1e-6) // len("ab") * 0.1
	assert.InDelta(t, 0.4, vec[1], 1e-6) // len("cdef") * 0.1
	for i := 2; i < 8; i++ {
		assert.Zero(t, vec[i])
	}
}

func TestEmbed_EmptyTextIsAllZero(t *testing.T) {
	svc := NewEmbeddingService(16)

	for _, text := range []string{"", "   ", "\n\t "} {
		vec, err := svc.Embed(context.Background(), text)
		require.NoError(t, err)
		for _, v := range vec {
			assert.Zero(t, v)
		}
	}
}

func TestEmbed_CapsAtHundredTokens(t *testing.T) {
	svc := NewEmbeddingService(256)

	text := strings.TrimSpace(strings.Repeat("ab ", 150))
	vec, err := svc.Embed(context.Background(), text)
	require.NoError(t, err)

	assert.NotZero(t, vec[99])
	assert.Zero(t, vec[100])
}

func TestEmbed_MoreTokensThanDimensions(t *testing.T) {
	svc := NewEmbeddingService(3)

	vec, err := svc.Embed(context.Background(), "a bb ccc dddd")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
}

func TestEmbedBatch(t *testing.T) {
	svc := NewEmbeddingService(32)

	vectors, err := svc.EmbedBatch(context.Background(), []string{"one", "two three"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Len(t, vectors[0], 32)
}

func TestDimensions_Default(t *testing.T) {
	assert.Equal(t, DefaultDimensions, NewEmbeddingService(0).Dimensions())
	assert.Equal(t, 42, NewEmbeddingService(42).Dimensions())
}
