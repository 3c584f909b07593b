// Package compose builds the deterministic LLM prompt and post-processes the
// model's raw output into normalized Markdown.
package compose

import (
	"regexp"
	"strings"

	"travelrag/internal/domain"
)

const (
	// snippetLimit caps each document excerpt included in the prompt, counted
	// in runes so a cut never lands inside a multi-byte character.
	snippetLimit = 1000

	energeticTone = "You are an energetic and curious travel expert specializing in family trips, adventures and relaxing getaways."
	calmTone      = "You are a calm and thoughtful travel planner with a focus on high-quality suggestions."

	baselineTone = "You are a helpful travel assistant."

	noBlogDisclaimer = "We couldn't find any relevant blog-based human opinions for your query. " +
		"Try refining your question or exploring a different destination."
)

var toneKeywords = []string{"family", "adventure"}

// Tone selects the system persona: energetic for family/adventure queries,
// calm otherwise. This keyword test is the only branching that affects the
// system-role text.
func Tone(query string) string {
	lower := strings.ToLower(query)
	for _, kw := range toneKeywords {
		if strings.Contains(lower, kw) {
			return energeticTone
		}
	}
	return calmTone
}

// BaselineTone is the system persona for the non-retrieval comparison path.
func BaselineTone() string { return baselineTone }

// Compose assembles the user prompt in a fixed order: role line, instruction
// block, optional knowledge-base snippet, enrichment text, truncated document
// snippets, the literal query, and the answer cue. Deterministic given its
// inputs.
func Compose(query string, documents []domain.Document, enrichment, kbSnippet string) string {
	var sb strings.Builder
	sb.WriteString("You are a professional and friendly travel assistant.\n\n")
	sb.WriteString("Your task is to generate a customized, engaging travel itinerary using the user query and the blog-based documents.\n\n")
	sb.WriteString("Instructions:\n")
	sb.WriteString("- Create a daily itinerary if possible.\n")
	sb.WriteString("- Use **direct quotes** from the blogs if available.\n")
	sb.WriteString("- Add **citations with hyperlinks** (e.g. `[source](https://blog.com/post123)`).\n")
	sb.WriteString("- If no relevant blog data exists, explain clearly that there are no blog-based human opinions.\n")
	sb.WriteString("- Keep the format clean and Markdown-friendly.\n")
	sb.WriteString("- Add a final note to suggest the user ask again for other destinations or options.\n\n")

	if kbSnippet != "" {
		sb.WriteString("Background knowledge:\n")
		sb.WriteString(kbSnippet)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Context from tools and blogs:\n")
	sb.WriteString(enrichment)
	for _, doc := range documents {
		snippet := strings.TrimSpace(string(doc))
		if snippet == "" {
			continue
		}
		if len(snippet) > snippetLimit {
			if runes := []rune(snippet); len(runes) > snippetLimit {
				snippet = string(runes[:snippetLimit])
			}
		}
		sb.WriteString("\n\n")
		sb.WriteString(snippet)
	}

	sb.WriteString("\n\nUser Query:\n")
	sb.WriteString(query)
	sb.WriteString("\n\nAnswer (markdown format):\n")
	return sb.String()
}

var (
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
	// bare URL not already inside <...> or a markdown link target
	bareURLRe = regexp.MustCompile(`(^|[^<(])(https?://[^\s<>"]+)`)
)

// Postprocess normalizes the raw LLM output: paragraph blocks separated by a
// horizontal rule, bare URLs wrapped in angle brackets, and a disclaimer
// appended when no blog-sourced text was available. Applying it twice yields
// the same result as applying it once.
func Postprocess(raw string, hasBlogSources bool) string {
	out := formatMarkdown(raw)
	out = autolink(out)
	if !hasBlogSources {
		out += "\n\n---\n\n" + noBlogDisclaimer
	}
	return out
}

// HasBlogSources reports whether any document carries a URL, i.e. traces back
// to a human-written blog post.
func HasBlogSources(documents []domain.Document) bool {
	for _, doc := range documents {
		if strings.Contains(string(doc), "http") {
			return true
		}
	}
	return false
}

func formatMarkdown(text string) string {
	var blocks []string
	for _, block := range blankLineRe.Split(strings.TrimSpace(text), -1) {
		block = strings.TrimSpace(block)
		// horizontal rules are re-inserted between blocks below
		if block != "" && block != "---" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func autolink(text string) string {
	return bareURLRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := bareURLRe.FindStringSubmatch(m)
		prefix, url := sub[1], sub[2]
		trimmed := strings.TrimRight(url, ".,;:!?")
		// a trailing ")" belongs to surrounding prose unless the URL itself
		// opened it, e.g. wiki/Rome_(city)
		for strings.HasSuffix(trimmed, ")") && strings.Count(trimmed, ")") > strings.Count(trimmed, "(") {
			trimmed = strings.TrimRight(strings.TrimSuffix(trimmed, ")"), ".,;:!?")
		}
		tail := url[len(trimmed):]
		return prefix + "<" + trimmed + ">" + tail
	})
}
