// Package filter narrows a document collection by structured criteria before
// similarity ranking.
package filter

import (
	"regexp"
	"strconv"
	"strings"

	"travelrag/internal/domain"
)

var (
	dayCountRe = regexp.MustCompile(`(\d+)\s*[-\s]?day[s]?`)
	// 3-5 digit figures, optionally dollar-prefixed, on original-case text.
	// Any bare number in that range can be misread as a budget; this is a
	// known heuristic limitation kept for parity with the source data.
	budgetFigureRe = regexp.MustCompile(`\$?(\d{3,5})`)
)

// Apply returns the order-preserving subsequence of documents that satisfy
// every active criterion. A document with no extractable evidence for an
// active criterion is excluded. With no active criteria the input is returned
// unchanged.
func Apply(documents []domain.Document, criteria domain.FilterCriteria) []domain.Document {
	if !criteria.Active() {
		return documents
	}
	out := make([]domain.Document, 0, len(documents))
	for _, doc := range documents {
		if matches(doc, criteria) {
			out = append(out, doc)
		}
	}
	return out
}

func matches(doc domain.Document, criteria domain.FilterCriteria) bool {
	text := string(doc)
	lower := strings.ToLower(text)

	if len(criteria.Countries) > 0 && !anySubstring(lower, criteria.Countries) {
		return false
	}
	if criteria.Duration != nil {
		m := dayCountRe.FindStringSubmatch(lower)
		if m == nil {
			return false
		}
		days, err := strconv.Atoi(m[1])
		if err != nil || days < criteria.Duration.MinDays || days > criteria.Duration.MaxDays {
			return false
		}
	}
	if len(criteria.ActivityKeywords) > 0 && !anySubstring(lower, criteria.ActivityKeywords) {
		return false
	}
	if criteria.MaxBudget != nil {
		m := budgetFigureRe.FindStringSubmatch(text)
		if m == nil {
			return false
		}
		figure, err := strconv.ParseFloat(m[1], 64)
		if err != nil || figure > *criteria.MaxBudget {
			return false
		}
	}
	return true
}

func anySubstring(lower string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
