package domain

import "time"

// Document is one travel reference entry: a blog excerpt, a dataset row or a
// scraped article paragraph. It carries no internal structure; filters rely on
// regex-extractable substrings. The collection is read-only at query time.
type Document string

// QueryIntent is the structured result of entity extraction over a free-text
// travel query. Every field defaults to absent; extraction never fails, it
// only leaves fields unset.
type QueryIntent struct {
	Origin      *string  `json:"origin"`
	Destination *string  `json:"destination"`
	Cuisine     *string  `json:"cuisine"`
	Budget      *int     `json:"budget"`
	Duration    *int     `json:"duration"`
	Activities  []string `json:"activities,omitempty"`
}

// DurationRange bounds a trip length filter in days, inclusive.
type DurationRange struct {
	MinDays int
	MaxDays int
}

// FilterCriteria narrows a document collection before ranking. Each present
// criterion is a conjunctive predicate; a document lacking extractable
// evidence for an active criterion is excluded, not passed through.
type FilterCriteria struct {
	Countries        []string
	Duration         *DurationRange
	ActivityKeywords []string
	MaxBudget        *float64
}

// Active reports whether any criterion is set.
func (c FilterCriteria) Active() bool {
	return len(c.Countries) > 0 || c.Duration != nil || len(c.ActivityKeywords) > 0 || c.MaxBudget != nil
}

// RankedMatch pairs a document with its similarity score 1/(1+L2 distance).
// The score is an ordering signal bounded in (0,1], not a calibrated
// confidence measure.
type RankedMatch struct {
	Document Document
	Score    float64
}

// EntityLabel is the tag set produced by a named-entity recognizer.
type EntityLabel string

const (
	LabelGPE   EntityLabel = "GPE"   // geo-political entity
	LabelMoney EntityLabel = "MONEY" // monetary amount
	LabelDate  EntityLabel = "DATE"  // date or duration phrase
	LabelOrg   EntityLabel = "ORG"   // organization
	LabelNorp  EntityLabel = "NORP"  // nationality, religious or political group
)

// Entity is a recognized span of text with its label.
type Entity struct {
	Text  string
	Label EntityLabel
}

// LinkStatus is the outcome of a reachability check for one extracted link.
type LinkStatus struct {
	Label     string
	URL       string
	Reachable bool
}

// Interaction holds the values the pipeline hands to logging collaborators
// after a response has been produced. The core produces these values but does
// not dictate how they are persisted.
type Interaction struct {
	ID          string
	Timestamp   time.Time
	Query       string
	MatchedDocs []Document
	Response    string
	Entities    *QueryIntent
	Model       string
	Prompt      string
	Scores      []float64
}
