// Package ner provides named-entity recognizers over travel query text.
package ner

import (
	"context"
	"regexp"
	"strings"

	"travelrag/internal/domain"
)

// Heuristic is a dependency-free recognizer built on surface patterns. It
// covers the label subset the extractor consumes (GPE, MONEY, DATE, NORP) and
// serves as the offline default and the test recognizer.
type Heuristic struct{}

// NewHeuristic creates the pattern-based recognizer.
func NewHeuristic() *Heuristic { return &Heuristic{} }

var (
	capitalRunRe = regexp.MustCompile(`\b[A-Z][a-z'’-]+(?:\s+[A-Z][a-z'’-]+)*\b`)
	moneyRe      = regexp.MustCompile(`(?i)\$\s*[\d,]+|\b[\d,]+\s*(?:dollars|usd)\b|\b(?:[a-z]+(?:[\s-][a-z]+)*\s)?(?:hundred|thousand)\s+(?:dollars|usd)\b`)
	durationRe   = regexp.MustCompile(`(?i)\b[\da-z]+[-\s]?days?\b`)
)

// Capitalized words that start travel queries or name trip concepts rather
// than places.
var capitalStoplist = map[string]struct{}{
	"Plan": {}, "Travel": {}, "Find": {}, "Suggest": {}, "Explore": {}, "Show": {},
	"Give": {}, "Visit": {}, "Book": {}, "Recommend": {}, "Create": {}, "Make": {},
	"Help": {}, "Please": {}, "What": {}, "Where": {}, "When": {}, "Which": {},
	"How": {}, "Who": {}, "Why": {}, "Can": {}, "Could": {}, "Would": {}, "Should": {},
	"The": {}, "A": {}, "An": {}, "Is": {}, "Are": {}, "Do": {}, "Does": {},
	"My": {}, "Our": {}, "Your": {}, "Top": {}, "Best": {}, "Trip": {}, "Itinerary": {},
	"Budget": {}, "Hotel": {}, "Hotels": {}, "Restaurant": {}, "Restaurants": {},
	"Food": {}, "Cuisine": {}, "Day": {}, "Days": {}, "Weekend": {},
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {}, "Friday": {},
	"Saturday": {}, "Sunday": {}, "January": {}, "February": {}, "March": {},
	"April": {}, "May": {}, "June": {}, "July": {}, "August": {}, "September": {},
	"October": {}, "November": {}, "December": {},
}

// Cuisine and nationality adjectives are tagged NORP, never GPE.
var norpAdjectives = map[string]struct{}{
	"Italian": {}, "Mexican": {}, "French": {}, "Thai": {}, "Japanese": {},
	"Spanish": {}, "Indian": {}, "Greek": {}, "Chinese": {}, "Korean": {},
	"Vietnamese": {}, "Turkish": {}, "Lebanese": {}, "Moroccan": {},
}

// Recognize tags money, duration, place and nationality spans in text order.
// It never returns an error; the signature matches remote recognizers.
func (h *Heuristic) Recognize(_ context.Context, text string) ([]domain.Entity, error) {
	var entities []domain.Entity

	for _, m := range moneyRe.FindAllString(text, -1) {
		entities = append(entities, domain.Entity{Text: strings.TrimSpace(m), Label: domain.LabelMoney})
	}
	for _, m := range durationRe.FindAllString(text, -1) {
		entities = append(entities, domain.Entity{Text: strings.TrimSpace(m), Label: domain.LabelDate})
	}

	for _, run := range capitalRunRe.FindAllString(text, -1) {
		tokens := strings.Fields(run)
		for len(tokens) > 0 {
			if _, stop := capitalStoplist[tokens[0]]; !stop {
				break
			}
			tokens = tokens[1:]
		}
		if len(tokens) == 0 {
			continue
		}
		span := strings.Join(tokens, " ")
		if _, norp := norpAdjectives[span]; norp {
			entities = append(entities, domain.Entity{Text: span, Label: domain.LabelNorp})
			continue
		}
		entities = append(entities, domain.Entity{Text: span, Label: domain.LabelGPE})
	}
	return entities, nil
}
