package domain

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// EntityRecognizer tags spans of text with entity labels.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// LLMClient is an opaque text-completion service. It may fail on network or
// auth errors; callers own the error-to-string contract.
type LLMClient interface {
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
	Model() string
}

// InteractionSink receives finished interaction values for persistence.
type InteractionSink interface {
	Log(interaction Interaction) error
}
