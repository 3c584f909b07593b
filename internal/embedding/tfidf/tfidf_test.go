package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"Rome has ancient ruins and museums",
	"Kyoto has temples and gardens",
	"Lisbon has beaches and seafood",
}

func TestPrepareBuildsVocabulary(t *testing.T) {
	v := New()
	require.NoError(t, v.Prepare(corpus))
	assert.Greater(t, v.Dimension(), 0)
}

func TestPrepareEmptyCorpus(t *testing.T) {
	v := New()
	assert.Error(t, v.Prepare(nil))
}

func TestEmbedBeforePrepare(t *testing.T) {
	v := New()
	_, err := v.Embed("anything")
	assert.Error(t, err)
}

func TestEmbedIsL2Normalized(t *testing.T) {
	v := New()
	require.NoError(t, v.Prepare(corpus))

	vec, err := v.Embed("ancient ruins in Rome")
	require.NoError(t, err)
	require.Len(t, vec, v.Dimension())

	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestEmbedUnknownTokensYieldZeroVector(t *testing.T) {
	v := New()
	require.NoError(t, v.Prepare(corpus))

	vec, err := v.Embed("quantum chromodynamics")
	require.NoError(t, err)
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func TestEmbedSimilarTextsAreCloser(t *testing.T) {
	v := New()
	require.NoError(t, v.Prepare(corpus))

	query, err := v.Embed("temples and gardens")
	require.NoError(t, err)
	kyoto, err := v.Embed(corpus[1])
	require.NoError(t, err)
	lisbon, err := v.Embed(corpus[2])
	require.NoError(t, err)

	assert.Greater(t, dot(query, kyoto), dot(query, lisbon))
}

func TestStopwordsAreIgnored(t *testing.T) {
	v := New()
	require.NoError(t, v.Prepare(corpus))

	vec, err := v.Embed("and the with from")
	require.NoError(t, err)
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
