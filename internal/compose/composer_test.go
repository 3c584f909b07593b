package compose

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrag/internal/domain"
)

func TestToneSelection(t *testing.T) {
	cases := []struct {
		query     string
		energetic bool
	}{
		{"Plan a family trip to Rome", true},
		{"adventure hiking in Patagonia", true},
		{"A quiet week in Vienna", false},
		{"FAMILY getaway ideas", true},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			tone := Tone(tc.query)
			if tc.energetic {
				assert.Contains(t, tone, "energetic")
			} else {
				assert.Contains(t, tone, "calm")
			}
		})
	}
}

func TestComposeSectionOrder(t *testing.T) {
	prompt := Compose("week in Rome", []domain.Document{"Rome is lovely."}, "Tool facts here.", "")

	idxInstructions := strings.Index(prompt, "Instructions:")
	idxContext := strings.Index(prompt, "Context from tools and blogs:")
	idxEnrichment := strings.Index(prompt, "Tool facts here.")
	idxDoc := strings.Index(prompt, "Rome is lovely.")
	idxQuery := strings.Index(prompt, "User Query:\nweek in Rome")
	idxAnswer := strings.Index(prompt, "Answer (markdown format):")

	for _, idx := range []int{idxInstructions, idxContext, idxEnrichment, idxDoc, idxQuery, idxAnswer} {
		require.GreaterOrEqual(t, idx, 0)
	}
	assert.Less(t, idxInstructions, idxContext)
	assert.Less(t, idxContext, idxEnrichment)
	assert.Less(t, idxEnrichment, idxDoc)
	assert.Less(t, idxDoc, idxQuery)
	assert.Less(t, idxQuery, idxAnswer)
}

func TestComposeIsDeterministic(t *testing.T) {
	docs := []domain.Document{"doc one", "doc two"}
	a := Compose("query", docs, "enrichment", "kb")
	b := Compose("query", docs, "enrichment", "kb")
	assert.Equal(t, a, b)
}

func TestComposeTruncatesLongDocuments(t *testing.T) {
	long := domain.Document(strings.Repeat("x", 3000))
	prompt := Compose("q", []domain.Document{long}, "facts", "")
	assert.Contains(t, prompt, strings.Repeat("x", 1000))
	assert.NotContains(t, prompt, strings.Repeat("x", 1001))
}

func TestComposeTruncatesOnRuneBoundary(t *testing.T) {
	// a multi-byte rune straddling the cut must survive whole, never be split
	doc := domain.Document(strings.Repeat("a", 999) + "é" + strings.Repeat("b", 50))
	prompt := Compose("q", []domain.Document{doc}, "facts", "")

	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, strings.Repeat("a", 999)+"é")
	assert.NotContains(t, prompt, "bb")
}

func TestComposeSkipsBlankDocuments(t *testing.T) {
	prompt := Compose("q", []domain.Document{"  ", "real content"}, "facts", "")
	assert.Contains(t, prompt, "real content")
	assert.NotContains(t, prompt, "\n\n  \n\n")
}

func TestComposeKnowledgeSnippetIsOptional(t *testing.T) {
	with := Compose("q", nil, "facts", "kb snippet")
	without := Compose("q", nil, "facts", "")
	assert.Contains(t, with, "Background knowledge:\nkb snippet")
	assert.NotContains(t, without, "Background knowledge:")
}

func TestPostprocessSeparatesParagraphs(t *testing.T) {
	out := Postprocess("First paragraph.\n\nSecond paragraph.", true)
	assert.Equal(t, "First paragraph.\n\n---\n\nSecond paragraph.", out)
}

func TestPostprocessDropsEmptyBlocks(t *testing.T) {
	out := Postprocess("One.\n\n\n\n   \n\nTwo.", true)
	assert.Equal(t, "One.\n\n---\n\nTwo.", out)
}

func TestPostprocessAutolinksBareURLs(t *testing.T) {
	out := Postprocess("See https://example.com/guide. for details", true)
	assert.Contains(t, out, "<https://example.com/guide>")
}

func TestPostprocessAutolinkTrimsClosingParen(t *testing.T) {
	out := Postprocess("(see https://example.com/guide) for more", true)
	assert.Contains(t, out, "(see <https://example.com/guide>) for more")
}

func TestPostprocessAutolinkKeepsBalancedParens(t *testing.T) {
	out := Postprocess("read https://en.wikipedia.org/wiki/Rome_(city) today", true)
	assert.Contains(t, out, "<https://en.wikipedia.org/wiki/Rome_(city)>")
}

func TestPostprocessLeavesMarkdownLinksAlone(t *testing.T) {
	out := Postprocess("See [guide](https://example.com/guide)", true)
	assert.Contains(t, out, "[guide](https://example.com/guide)")
	assert.NotContains(t, out, "<https://example.com/guide>")
}

func TestPostprocessAppendsDisclaimerWithoutBlogSources(t *testing.T) {
	out := Postprocess("An itinerary.", false)
	assert.True(t, strings.HasSuffix(out, noBlogDisclaimer))
	assert.Contains(t, out, "\n\n---\n\n")
}

func TestPostprocessIsIdempotent(t *testing.T) {
	raw := "Day 1 in Rome.\n\nDay 2: see https://blog.example/rome\n\nDay 3 rest."
	once := Postprocess(raw, true)
	twice := Postprocess(once, true)
	assert.Equal(t, once, twice)
}

func TestHasBlogSources(t *testing.T) {
	assert.True(t, HasBlogSources([]domain.Document{"plain", "see https://blog.example/x"}))
	assert.False(t, HasBlogSources([]domain.Document{"plain", "no links at all"}))
	assert.False(t, HasBlogSources(nil))
}
