// Package tfidf provides a local TF-IDF vectorizer used as the offline
// embedding model over the travel document corpus.
package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vectorizer embeds text as smoothed TF-IDF weights over a corpus
// vocabulary. After Prepare it is read-only and safe for concurrent use.
type Vectorizer struct {
	vocabulary   map[string]int
	idf          []float64
	dimension    int
	prepared     bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// New creates an unprepared vectorizer.
func New() *Vectorizer {
	return &Vectorizer{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Name returns the identifier of this embedder implementation.
func (v *Vectorizer) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF weights from the document corpus.
func (v *Vectorizer) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus")
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.dimension = len(terms)
	v.prepared = true
	return nil
}

// Dimension returns the vocabulary size, i.e. the vector dimensionality.
func (v *Vectorizer) Dimension() int { return v.dimension }

// Embed computes the L2-normalized TF-IDF vector for the given text.
func (v *Vectorizer) Embed(text string) ([]float64, error) {
	if !v.prepared {
		return nil, errors.New("tfidf vectorizer not prepared")
	}
	vec := make([]float64, v.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range v.tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.idf[idx]
	}
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

func (v *Vectorizer) tokenize(text string) []string {
	raw := v.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := v.stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of",
		"in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been",
		"being", "it", "this", "that", "these", "those", "from", "up", "down", "over",
		"under", "again", "further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out", "off", "own",
		"same", "too", "very", "can", "will", "just", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
