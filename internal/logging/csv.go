package logging

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"travelrag/internal/domain"
)

const responsesName = "responses.csv"

var responseHeader = []string{"id", "timestamp", "query", "model", "entities", "prompt", "response"}

// CSVLogger appends one row per interaction to responses.csv, writing the
// header when the file is created.
type CSVLogger struct {
	mu  sync.Mutex
	dir string
}

// NewCSVLogger creates a logger writing under dir.
func NewCSVLogger(dir string) *CSVLogger {
	return &CSVLogger{dir: dir}
}

// Log appends the interaction as a CSV row.
func (l *CSVLogger) Log(it domain.Interaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(l.dir, responsesName)
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
		if err := w.Write(responseHeader); err != nil {
			return err
		}
	}
	entities := ""
	if it.Entities != nil {
		if raw, err := json.Marshal(it.Entities); err == nil {
			entities = string(raw)
		}
	}
	row := []string{
		it.ID,
		it.Timestamp.Format("2006-01-02 15:04:05"),
		it.Query,
		it.Model,
		entities,
		it.Prompt,
		it.Response,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
