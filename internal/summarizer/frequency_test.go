package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizePicksFrequentTopicSentences(t *testing.T) {
	text := "Rome has ancient ruins and Rome has great food. " +
		"The weather was fine. " +
		"Visiting Rome in spring means Rome at its best."
	s := NewFrequencySummarizer()

	summary, err := s.Summarize(text, 2)
	require.NoError(t, err)
	assert.Contains(t, summary, "Rome")
	assert.NotContains(t, summary, "weather")
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	text := "Alpha alpha alpha first. Unrelated filler here. Alpha alpha second."
	s := NewFrequencySummarizer()

	summary, err := s.Summarize(text, 2)
	require.NoError(t, err)
	first := strings.Index(summary, "first")
	second := strings.Index(summary, "second")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestSummarizeBoostsPlaceNameSentences(t *testing.T) {
	text := "The trip was long and the trip was slow. " +
		"We stopped in Florence and Siena along the way."
	s := NewFrequencySummarizer()

	summary, err := s.Summarize(text, 1)
	require.NoError(t, err)
	assert.Contains(t, summary, "Florence")
	assert.NotContains(t, summary, "slow")
}

func TestSummarizeCapsAtSentenceCount(t *testing.T) {
	s := NewFrequencySummarizer()
	summary, err := s.Summarize("Only one sentence here.", 5)
	require.NoError(t, err)
	assert.Equal(t, "Only one sentence here.", summary)
}

func TestSummarizeNoPunctuation(t *testing.T) {
	s := NewFrequencySummarizer()
	summary, err := s.Summarize("no terminal punctuation at all", 3)
	require.NoError(t, err)
	assert.Equal(t, "no terminal punctuation at all", summary)
}
