package logging

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const feedbackName = "feedback.csv"

var feedbackHeader = []string{"timestamp", "query", "rag_response", "baseline_response", "preferred", "notes"}

// Feedback records a side-by-side comparison verdict between the retrieval
// answer and the baseline answer for the same query.
type Feedback struct {
	Timestamp        time.Time
	Query            string
	RAGResponse      string
	BaselineResponse string
	Preferred        string
	Notes            string
}

// FeedbackLogger appends comparison verdicts to feedback.csv.
type FeedbackLogger struct {
	mu  sync.Mutex
	dir string
}

// NewFeedbackLogger creates a logger writing under dir.
func NewFeedbackLogger(dir string) *FeedbackLogger {
	return &FeedbackLogger{dir: dir}
}

// Save appends the feedback entry as a CSV row.
func (l *FeedbackLogger) Save(fb Feedback) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(l.dir, feedbackName)
	fresh := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fresh = true
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(feedbackHeader); err != nil {
			return err
		}
	}
	ts := fb.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	row := []string{
		ts.Format("2006-01-02 15:04:05"),
		fb.Query,
		fb.RAGResponse,
		fb.BaselineResponse,
		fb.Preferred,
		fb.Notes,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
