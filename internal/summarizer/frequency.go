// Package summarizer condenses long travel articles into short overviews
// shown alongside retrieval results.
package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// placeWeight is the score added per distinct capitalized name mentioned in a
// sentence. Travel writing carries its subject in proper nouns, so sentences
// naming places outrank equally word-frequent filler.
const placeWeight = 0.4

// FrequencySummarizer scores sentences by normalized token frequency, boosted
// for sentences that mention named places.
type FrequencySummarizer struct {
	sentenceRe *regexp.Regexp
	tokenRe    *regexp.Regexp
	properRe   *regexp.Regexp
	stopwords  map[string]struct{}
}

// NewFrequencySummarizer creates a place-aware frequency sentence ranker.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{
		sentenceRe: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
		tokenRe:    regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		properRe:   regexp.MustCompile(`\p{Lu}\p{Ll}+`),
		stopwords:  defaultStopwords(),
	}
}

// Summarize keeps the maxSentences highest-scoring sentences of text, in their
// original order. Text without sentence punctuation is returned as-is.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := s.sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	tokenized := make([][]string, len(sentences))
	freq := map[string]float64{}
	for i, sent := range sentences {
		tokenized[i] = s.tokenRe.FindAllString(strings.ToLower(sent), -1)
		for _, tok := range tokenized[i] {
			if _, ok := s.stopwords[tok]; !ok {
				freq[tok]++
			}
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		base := 0.0
		for _, tok := range tokenized[i] {
			base += freq[tok]
		}
		// Normalize by sentence length to avoid bias toward long sentences.
		if l := float64(len(tokenized[i])); l > 0 {
			base /= math.Sqrt(l)
		}
		scores[i] = pair{i, base + placeWeight*float64(s.placeMentions(sent))}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	// Keep original order among selected sentences.
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	var out []string
	for _, idx := range selected {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " "), nil
}

// placeMentions counts distinct capitalized names in a sentence. The
// sentence-initial word is skipped since any sentence capitalizes it, and
// stopwords are skipped so a mid-sentence "The" never counts as a place.
func (s *FrequencySummarizer) placeMentions(sentence string) int {
	trimmed := strings.TrimSpace(sentence)
	seen := map[string]struct{}{}
	for _, span := range s.properRe.FindAllStringIndex(trimmed, -1) {
		if span[0] == 0 {
			continue
		}
		name := strings.ToLower(trimmed[span[0]:span[1]])
		if _, ok := s.stopwords[name]; ok {
			continue
		}
		seen[name] = struct{}{}
	}
	return len(seen)
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
