// Package pipeline wires extraction, filtering, ranking, enrichment and
// composition into the end-to-end travel assistant flow.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travelrag/internal/compose"
	"travelrag/internal/domain"
	"travelrag/internal/enrich"
	"travelrag/internal/extract"
	"travelrag/internal/filter"
	"travelrag/internal/rank"
)

const noMatchNotice = "No documents match the filters. Try relaxing them."

const (
	baselineTemperature = 0.7
	baselineMaxTokens   = 500
)

// Deps are the pipeline's collaborators. Links and Sinks are optional.
type Deps struct {
	Extractor *extract.Extractor
	Ranker    *rank.Ranker
	Enricher  *enrich.Enricher
	LLM       domain.LLMClient
	Links     *compose.LinkChecker
	Sinks     []domain.InteractionSink
	Logger    *zap.Logger
}

// Config holds the tunables of the retrieval path.
type Config struct {
	TopK        int
	Temperature float64
	MaxTokens   int
	// KnowledgeSnippet is an optional background-knowledge block included in
	// every prompt, e.g. a generated knowledge-base summary.
	KnowledgeSnippet string
}

// Pipeline runs travel queries end to end. It is safe for concurrent use once
// constructed.
type Pipeline struct {
	deps Deps
	cfg  Config
}

// New creates a pipeline. Zero-valued tunables fall back to the defaults the
// assistant was tuned with.
func New(deps Deps, cfg Config) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = rank.DefaultTopK
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.8
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 700
	}
	return &Pipeline{deps: deps, cfg: cfg}
}

// Result carries everything a front-end may want to show for one query.
type Result struct {
	Response  string
	Intent    domain.QueryIntent
	Matches   []domain.RankedMatch
	Prompt    string
	Links     []domain.LinkStatus
	NoMatches bool
}

// Respond runs the full retrieval flow: extract intent, filter the corpus,
// rank survivors, enrich, compose the prompt, call the model and post-process
// the answer. Completion failures are folded into the response text, never
// returned as errors; only ranking failures abort the flow.
func (p *Pipeline) Respond(ctx context.Context, query string, documents []domain.Document, criteria domain.FilterCriteria) (Result, error) {
	intent := p.deps.Extractor.Extract(ctx, query)

	candidates := filter.Apply(documents, criteria)
	if len(candidates) == 0 {
		p.deps.Logger.Info("no documents after filtering", zap.String("query", query))
		return Result{Response: noMatchNotice, Intent: intent, NoMatches: true}, nil
	}

	matches, err := p.deps.Ranker.Rank(query, candidates, p.cfg.TopK)
	if err != nil {
		return Result{Intent: intent}, err
	}
	matchedDocs := make([]domain.Document, len(matches))
	scores := make([]float64, len(matches))
	for i, m := range matches {
		matchedDocs[i] = m.Document
		scores[i] = m.Score
	}

	enrichment := p.deps.Enricher.Enrich(ctx, intent)
	prompt := compose.Compose(query, matchedDocs, enrichment, p.cfg.KnowledgeSnippet)
	tone := compose.Tone(query)

	raw, err := p.deps.LLM.Complete(ctx, tone, prompt, p.cfg.Temperature, p.cfg.MaxTokens)
	if err != nil {
		p.deps.Logger.Warn("completion failed", zap.Error(err))
		response := "Error generating response: " + err.Error()
		p.record(domain.Interaction{
			ID:          uuid.NewString(),
			Timestamp:   time.Now(),
			Query:       query,
			MatchedDocs: matchedDocs,
			Response:    response,
			Model:       p.deps.LLM.Model(),
			Scores:      scores,
		})
		return Result{Response: response, Intent: intent, Matches: matches, Prompt: prompt}, nil
	}

	response := compose.Postprocess(raw, compose.HasBlogSources(matchedDocs))

	var links []domain.LinkStatus
	if p.deps.Links != nil {
		links = p.deps.Links.Verify(ctx, response)
	}

	p.record(domain.Interaction{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		Query:       query,
		MatchedDocs: matchedDocs,
		Response:    response,
		Entities:    &intent,
		Model:       p.deps.LLM.Model(),
		Prompt:      prompt,
		Scores:      scores,
	})

	return Result{
		Response: response,
		Intent:   intent,
		Matches:  matches,
		Prompt:   prompt,
		Links:    links,
	}, nil
}

// Baseline answers the query without retrieval context, for side-by-side
// comparison with the retrieval path. Failures are folded into the response
// text under a distinct prefix so the two paths stay distinguishable in logs.
func (p *Pipeline) Baseline(ctx context.Context, query string) string {
	raw, err := p.deps.LLM.Complete(ctx, compose.BaselineTone(), query, baselineTemperature, baselineMaxTokens)
	if err != nil {
		p.deps.Logger.Warn("baseline completion failed", zap.Error(err))
		return "Error (no RAG): " + err.Error()
	}
	return compose.Postprocess(raw, true)
}

func (p *Pipeline) record(it domain.Interaction) {
	for _, sink := range p.deps.Sinks {
		if err := sink.Log(it); err != nil {
			p.deps.Logger.Warn("interaction sink failed", zap.Error(err))
		}
	}
}
