// Package loader assembles the travel document corpus from mixed on-disk
// sources: plain-text dumps, JSON article lists and CSV trip tables.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"travelrag/internal/domain"
)

// Loader reads corpus files from a source directory. Unknown file types are
// skipped with a warning so a stray file cannot break corpus assembly.
type Loader struct {
	logger *zap.Logger
}

// New creates a corpus loader.
func New(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadDir reads every supported file directly under dir and returns the
// combined document list. Text files contribute one document per non-blank
// line, JSON files a document per entry carrying a "text" field, and CSV
// files a "place - description" document per row.
func (l *Loader) LoadDir(dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}
	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		var (
			loaded []domain.Document
			lerr   error
		)
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt":
			loaded, lerr = loadText(path)
		case ".json":
			loaded, lerr = loadJSON(path)
		case ".csv":
			loaded, lerr = loadCSV(path)
		default:
			l.logger.Debug("skipping unsupported corpus file", zap.String("file", entry.Name()))
			continue
		}
		if lerr != nil {
			l.logger.Warn("failed to load corpus file", zap.String("file", entry.Name()), zap.Error(lerr))
			continue
		}
		docs = append(docs, loaded...)
	}
	return docs, nil
}

func loadText(path string) ([]domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []domain.Document
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			docs = append(docs, domain.Document(line))
		}
	}
	return docs, nil
}

func loadJSON(path string) ([]domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	var docs []domain.Document
	for _, e := range entries {
		if e.Text != "" {
			docs = append(docs, domain.Document(e.Text))
		}
	}
	return docs, nil
}

// loadCSV accepts trip tables keyed by either location or city, paired with
// a description column.
func loadCSV(path string) ([]domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}
	placeIdx, descIdx := -1, -1
	for i, col := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "location", "city":
			placeIdx = i
		case "description":
			descIdx = i
		}
	}
	if placeIdx < 0 || descIdx < 0 {
		return nil, fmt.Errorf("csv %s lacks place/description columns", filepath.Base(path))
	}
	var docs []domain.Document
	for _, row := range rows[1:] {
		if placeIdx >= len(row) || descIdx >= len(row) {
			continue
		}
		place := strings.TrimSpace(row[placeIdx])
		desc := strings.TrimSpace(row[descIdx])
		if place == "" || desc == "" {
			continue
		}
		docs = append(docs, domain.Document(place+" - "+desc))
	}
	return docs, nil
}

// Splitter breaks long articles into overlapping sentence-based passages so
// a single sprawling blog post does not dominate retrieval.
type Splitter struct {
	sentencesPerPassage int
	overlapSentences    int
	splitter            *regexp.Regexp
}

// NewSplitter creates a splitter producing passages of sentencesPerPassage
// sentences with overlapSentences carried between neighbors.
func NewSplitter(sentencesPerPassage, overlapSentences int) *Splitter {
	if sentencesPerPassage <= 0 {
		sentencesPerPassage = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	return &Splitter{
		sentencesPerPassage: sentencesPerPassage,
		overlapSentences:    overlapSentences,
		splitter:            regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

// Split returns the passages of one article. Short articles come back as a
// single passage; blank input yields none.
func (s *Splitter) Split(article domain.Document) []domain.Document {
	sentences := s.splitter.FindAllString(string(article), -1)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(string(article))
		if trimmed == "" {
			return nil
		}
		sentences = []string{trimmed}
	}
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}
	var passages []domain.Document
	i := 0
	for i < len(sentences) {
		end := i + s.sentencesPerPassage
		if end > len(sentences) {
			end = len(sentences)
		}
		passages = append(passages, domain.Document(strings.Join(sentences[i:end], " ")))
		if end == len(sentences) {
			break
		}
		i = end - s.overlapSentences
		if i < 0 {
			i = 0
		}
	}
	return passages
}

// SplitAll splits every article and flattens the result.
func (s *Splitter) SplitAll(articles []domain.Document) []domain.Document {
	var out []domain.Document
	for _, article := range articles {
		out = append(out, s.Split(article)...)
	}
	return out
}
