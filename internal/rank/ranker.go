// Package rank orders filtered documents by vector similarity to the query.
package rank

import (
	"fmt"
	"math"
	"sort"

	"travelrag/internal/domain"
)

// DefaultTopK is used when callers pass a non-positive k.
const DefaultTopK = 5

// Ranker embeds the query and each candidate with a shared embedding model
// and searches an ephemeral exact L2 index built over just the candidates.
// The per-request index is never shared across concurrent calls; the embedder
// is read-only after its preparation phase.
type Ranker struct {
	embedder domain.Embedder
}

// New creates a Ranker over a prepared embedder.
func New(embedder domain.Embedder) *Ranker {
	return &Ranker{embedder: embedder}
}

// Rank returns the top min(k, len(documents)) matches ordered by
// non-increasing similarity, ties broken by original collection order.
// Similarity is 1/(1+L2 distance): monotone in distance, bounded in (0,1],
// and only meaningful as an ordering signal.
func (r *Ranker) Rank(query string, documents []domain.Document, k int) ([]domain.RankedMatch, error) {
	if len(documents) == 0 {
		return nil, nil
	}
	if k <= 0 {
		k = DefaultTopK
	}
	if k > len(documents) {
		k = len(documents)
	}

	queryVec, err := r.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	index := newFlatIndex(len(documents))
	for i, doc := range documents {
		vec, err := r.embedder.Embed(string(doc))
		if err != nil {
			return nil, fmt.Errorf("embedding document %d: %w", i, err)
		}
		index.add(vec)
	}

	matches := make([]domain.RankedMatch, 0, k)
	for _, n := range index.search(queryVec, k) {
		matches = append(matches, domain.RankedMatch{
			Document: documents[n.idx],
			Score:    1 / (1 + n.distance),
		})
	}
	return matches, nil
}

// flatIndex is an exhaustive L2-distance index private to one request.
type flatIndex struct {
	vectors [][]float64
}

type neighbor struct {
	idx      int
	distance float64
}

func newFlatIndex(capacity int) *flatIndex {
	return &flatIndex{vectors: make([][]float64, 0, capacity)}
}

func (f *flatIndex) add(vec []float64) {
	f.vectors = append(f.vectors, vec)
}

// search returns the k nearest vectors by L2 distance. The sort is stable so
// equidistant vectors keep their insertion order.
func (f *flatIndex) search(query []float64, k int) []neighbor {
	neighbors := make([]neighbor, len(f.vectors))
	for i, vec := range f.vectors {
		neighbors[i] = neighbor{idx: i, distance: l2Distance(query, vec)}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})
	if k > len(neighbors) {
		k = len(neighbors)
	}
	return neighbors[:k]
}

func l2Distance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	// account for dimension mismatch tails
	for i := n; i < len(a); i++ {
		sum += a[i] * a[i]
	}
	for i := n; i < len(b); i++ {
		sum += b[i] * b[i]
	}
	return math.Sqrt(sum)
}
