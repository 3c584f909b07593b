package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrag/internal/domain"
	"travelrag/internal/enrich"
	"travelrag/internal/extract"
	"travelrag/internal/ner"
	"travelrag/internal/rank"
)

var corpus = []domain.Document{
	"Japan - 7-day journey through Tokyo and Kyoto with temples, museums and food tours. See https://blog.example/japan",
	"Italy - 3 days in Rome with beach day trips, around $800.",
	"Iceland - glacier hikes and hot springs on a 5-day loop.",
}

// wordEmbedder is a tiny deterministic bag-of-words embedder over a fixed
// vocabulary, enough to make ranking behave predictably.
type wordEmbedder struct{ vocab []string }

func newWordEmbedder() *wordEmbedder {
	return &wordEmbedder{vocab: []string{"japan", "tokyo", "kyoto", "rome", "italy", "iceland", "temples", "beach", "glacier"}}
}

func (w *wordEmbedder) Name() string                  { return "words" }
func (w *wordEmbedder) Prepare(corpus []string) error { return nil }
func (w *wordEmbedder) Dimension() int                { return len(w.vocab) }

func (w *wordEmbedder) Embed(text string) ([]float64, error) {
	lower := strings.ToLower(text)
	vec := make([]float64, len(w.vocab))
	for i, term := range w.vocab {
		if strings.Contains(lower, term) {
			vec[i] = 1
		}
	}
	return vec, nil
}

// stubLLM records the last call and replies with a fixed answer or error.
type stubLLM struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubLLM) Model() string { return "stub-model" }

func (s *stubLLM) Complete(_ context.Context, system, user string, _ float64, _ int) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// memorySink collects interactions in memory.
type memorySink struct {
	interactions []domain.Interaction
	err          error
}

func (m *memorySink) Log(it domain.Interaction) error {
	if m.err != nil {
		return m.err
	}
	m.interactions = append(m.interactions, it)
	return nil
}

func newTestPipeline(llm domain.LLMClient, sinks ...domain.InteractionSink) *Pipeline {
	return New(Deps{
		Extractor: extract.New(ner.NewHeuristic(), nil),
		Ranker:    rank.New(newWordEmbedder()),
		Enricher:  enrich.New(nil),
		LLM:       llm,
		Sinks:     sinks,
	}, Config{TopK: 2})
}

func TestRespondEndToEnd(t *testing.T) {
	llm := &stubLLM{reply: "Day 1: temples in Kyoto.\n\nDay 2: Tokyo food tour."}
	sink := &memorySink{}
	p := newTestPipeline(llm, sink)

	result, err := p.Respond(context.Background(), "temples in Kyoto, Japan", corpus, domain.FilterCriteria{})
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	assert.Equal(t, corpus[0], result.Matches[0].Document, "the Japan doc shares the most terms")
	assert.Equal(t, "Day 1: temples in Kyoto.\n\n---\n\nDay 2: Tokyo food tour.", result.Response)

	// the prompt carries the query and the top match
	assert.Contains(t, llm.lastUser, "User Query:\ntemples in Kyoto, Japan")
	assert.Contains(t, llm.lastUser, "Context from tools and blogs:")
	assert.Contains(t, llm.lastSystem, "calm")

	require.Len(t, sink.interactions, 1)
	it := sink.interactions[0]
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, "stub-model", it.Model)
	assert.Equal(t, result.Response, it.Response)
	require.NotNil(t, it.Entities)
	assert.Len(t, it.Scores, 2)
}

func TestRespondNoBlogSourcesGetsDisclaimer(t *testing.T) {
	llm := &stubLLM{reply: "A beach plan."}
	p := newTestPipeline(llm)

	result, err := p.Respond(context.Background(), "beach time in Rome, Italy", corpus,
		domain.FilterCriteria{Countries: []string{"italy"}})
	require.NoError(t, err)
	assert.Contains(t, result.Response, "We couldn't find any relevant blog-based human opinions")
}

func TestRespondBlogSourcesSkipDisclaimer(t *testing.T) {
	llm := &stubLLM{reply: "Kyoto plan with [source](https://blog.example/japan)."}
	p := newTestPipeline(llm)

	result, err := p.Respond(context.Background(), "temples in Kyoto, Japan", corpus, domain.FilterCriteria{})
	require.NoError(t, err)
	assert.NotContains(t, result.Response, "We couldn't find any relevant blog-based human opinions")
}

func TestRespondFilteredToNothing(t *testing.T) {
	llm := &stubLLM{reply: "should never be called"}
	sink := &memorySink{}
	p := newTestPipeline(llm, sink)

	result, err := p.Respond(context.Background(), "anywhere", corpus,
		domain.FilterCriteria{Countries: []string{"atlantis"}})
	require.NoError(t, err)

	assert.True(t, result.NoMatches)
	assert.Equal(t, "No documents match the filters. Try relaxing them.", result.Response)
	assert.Empty(t, llm.lastUser, "the model must not be called")
	assert.Empty(t, sink.interactions)
}

func TestRespondCompletionFailureContract(t *testing.T) {
	llm := &stubLLM{err: errors.New("rate limited")}
	sink := &memorySink{}
	p := newTestPipeline(llm, sink)

	result, err := p.Respond(context.Background(), "temples in Kyoto, Japan", corpus, domain.FilterCriteria{})
	require.NoError(t, err, "completion failures are folded into the response")
	assert.Equal(t, "Error generating response: rate limited", result.Response)

	// the failed attempt is still logged, without entities
	require.Len(t, sink.interactions, 1)
	assert.Equal(t, result.Response, sink.interactions[0].Response)
	assert.Nil(t, sink.interactions[0].Entities)
}

func TestRespondSinkFailureIsNotFatal(t *testing.T) {
	llm := &stubLLM{reply: "fine"}
	p := newTestPipeline(llm, &memorySink{err: errors.New("disk full")})

	result, err := p.Respond(context.Background(), "temples in Kyoto, Japan", corpus, domain.FilterCriteria{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Response)
}

func TestBaseline(t *testing.T) {
	llm := &stubLLM{reply: "General advice.\n\nMore advice."}
	p := newTestPipeline(llm)

	out := p.Baseline(context.Background(), "where should I go?")
	assert.Equal(t, "General advice.\n\n---\n\nMore advice.", out)
	assert.Contains(t, llm.lastSystem, "helpful travel assistant")
	assert.Equal(t, "where should I go?", llm.lastUser)
}

func TestBaselineFailureContract(t *testing.T) {
	llm := &stubLLM{err: errors.New("timeout")}
	p := newTestPipeline(llm)

	out := p.Baseline(context.Background(), "anywhere")
	assert.Equal(t, "Error (no RAG): timeout", out)
}
