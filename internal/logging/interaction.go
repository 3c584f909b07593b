// Package logging persists finished interactions for later analysis. The
// pipeline core only produces interaction values; formats live here.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"travelrag/internal/domain"
)

const textLogName = "query_log.txt"

// TextLogger appends human-readable interaction blocks to query_log.txt.
type TextLogger struct {
	mu  sync.Mutex
	dir string
}

// NewTextLogger creates a logger writing under dir.
func NewTextLogger(dir string) *TextLogger {
	return &TextLogger{dir: dir}
}

// Log appends one timestamped block: query, numbered matched documents,
// extracted entities as JSON (when present) and the generated response.
func (l *TextLogger) Log(it domain.Interaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(l.dir, textLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Query at %s ---\n", it.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "User Query:\n%s\n\n", it.Query)
	sb.WriteString("Top Matching Documents:\n")
	for i, doc := range it.MatchedDocs {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, string(doc))
	}
	if it.Entities != nil {
		entities, err := json.Marshal(it.Entities)
		if err == nil {
			fmt.Fprintf(&sb, "\nExtracted Entities:\n%s\n", entities)
		}
	}
	fmt.Fprintf(&sb, "\nGenerated Response:\n%s\n", it.Response)
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	_, err = f.WriteString(sb.String())
	return err
}
