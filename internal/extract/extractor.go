package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"travelrag/internal/domain"
)

// Extractor turns a free-text travel query into a structured QueryIntent.
// Extraction is total: every internal failure leaves the affected field unset
// instead of surfacing an error.
type Extractor struct {
	recognizer domain.EntityRecognizer
	logger     *zap.Logger
}

// New creates an Extractor backed by the given entity recognizer.
func New(recognizer domain.EntityRecognizer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{recognizer: recognizer, logger: logger}
}

var (
	fromToRe = regexp.MustCompile(`(?i)\bfrom\s+(.+?)\s+to\s+(.+)`)
	// trailing clause cut for the destination captured by fromToRe
	clauseCutRe    = regexp.MustCompile(`(?i)\s+(?:for|with|and|on|in|at|to)\b.*$`)
	digitsRe       = regexp.MustCompile(`\d+`)
	budgetPhraseRe = regexp.MustCompile(`(?i)(?:spend|budget)\s*(?:of|around|about)?\s*([a-zA-Z][a-zA-Z\s-]*)`)
)

var cuisineVocabulary = []string{
	"italian", "mexican", "french", "thai", "japanese", "spanish", "indian", "greek",
	"chinese", "korean", "vietnamese", "turkish", "lebanese", "moroccan",
}

// activityLemmas maps surface forms to their canonical activity keyword.
var activityLemmas = map[string]string{
	"beach": "beach", "beaches": "beach",
	"museum": "museum", "museums": "museum",
	"hike": "hike", "hikes": "hike", "hiking": "hike",
	"ski": "ski", "skiing": "ski",
	"surf": "surf", "surfing": "surf",
	"food": "food",
}

// Extract parses origin, destination, cuisine, budget, duration and
// activities out of the query. Fields are first-match-wins: later candidates
// never overwrite a value that is already set.
func (e *Extractor) Extract(ctx context.Context, query string) domain.QueryIntent {
	var intent domain.QueryIntent

	// The explicit "from X to Y" surface pattern takes precedence over
	// generic location tagging.
	if m := fromToRe.FindStringSubmatch(query); m != nil {
		origin := cleanPlace(m[1])
		dest := cleanPlace(clauseCutRe.ReplaceAllString(m[2], ""))
		if origin != "" {
			intent.Origin = &origin
		}
		if dest != "" {
			intent.Destination = &dest
		}
	}
	fromToSetBoth := intent.Origin != nil && intent.Destination != nil

	entities, err := e.recognizer.Recognize(ctx, query)
	if err != nil {
		e.logger.Debug("entity recognition failed, continuing with surface patterns", zap.Error(err))
		entities = nil
	}

	for _, ent := range entities {
		switch ent.Label {
		case domain.LabelGPE:
			if fromToSetBoth {
				continue
			}
			place := cleanPlace(ent.Text)
			if place == "" {
				continue
			}
			if intent.Destination == nil {
				intent.Destination = &place
			} else if intent.Origin == nil && !strings.EqualFold(place, *intent.Destination) {
				intent.Origin = &place
			}
		case domain.LabelMoney:
			if intent.Budget != nil {
				continue
			}
			if v, ok := parseAmount(ent.Text); ok {
				intent.Budget = &v
			}
		case domain.LabelDate:
			if intent.Duration != nil {
				continue
			}
			if v, ok := parseAmount(ent.Text); ok {
				intent.Duration = &v
			}
		case domain.LabelOrg, domain.LabelNorp:
			if intent.Cuisine != nil {
				continue
			}
			lower := strings.ToLower(ent.Text)
			if strings.Contains(lower, "food") || strings.Contains(lower, "cuisine") {
				cuisine := ent.Text
				intent.Cuisine = &cuisine
			}
		}
	}

	if intent.Cuisine == nil {
		for _, word := range wordRe.FindAllString(strings.ToLower(query), -1) {
			for _, c := range cuisineVocabulary {
				if word == c {
					cuisine := capitalize(c)
					intent.Cuisine = &cuisine
					break
				}
			}
			if intent.Cuisine != nil {
				break
			}
		}
	}

	if intent.Budget == nil {
		if m := budgetPhraseRe.FindStringSubmatch(query); m != nil {
			if v, err := ParseNumberWords(m[1]); err == nil {
				intent.Budget = &v
			}
		}
	}

	intent.Activities = extractActivities(query)
	return intent
}

// parseAmount tries digit extraction first, then spelled-out number words.
func parseAmount(text string) (int, bool) {
	if m := digitsRe.FindString(strings.ReplaceAll(text, ",", "")); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			return v, true
		}
	}
	if v, err := ParseNumberWords(text); err == nil {
		return v, true
	}
	return 0, false
}

func extractActivities(query string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, word := range wordRe.FindAllString(strings.ToLower(query), -1) {
		lemma, ok := activityLemmas[word]
		if !ok {
			continue
		}
		if _, dup := seen[lemma]; dup {
			continue
		}
		seen[lemma] = struct{}{}
		out = append(out, lemma)
	}
	return out
}

func cleanPlace(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".,!?;:")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
