// Package catalog persists the metadata records describing every stored
// document. The catalog is a single JSON file rewritten in full on every
// mutation; it is the sole authority on which document ids exist. There is
// no locking: concurrent writers race and the last full-file rewrite wins.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Record describes one stored document. Fields are immutable once written.
type Record struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	SavedName  string    `json:"savedName"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Catalog struct {
	path string
}

func New(path string) *Catalog {
	return &Catalog{path: path}
}

// Load returns all records. A missing or unparsable catalog file is an
// empty catalog, never an error.
func (c *Catalog) Load() []Record {
	data, readErr := os.ReadFile(c.path)
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			slog.Warn("failed to read catalog, treating as empty", "path", c.path, "error", readErr)
		}
		return []Record{}
	}

	var records []Record
	if unmarshalErr := json.Unmarshal(data, &records); unmarshalErr != nil {
		slog.Warn("failed to parse catalog, treating as empty", "path", c.path, "error", unmarshalErr)
		return []Record{}
	}
	if records == nil {
		records = []Record{}
	}
	return records
}

// Save rewrites the whole catalog file with the given records.
func (c *Catalog) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}

	data, marshalErr := json.MarshalIndent(records, "", "  ")
	if marshalErr != nil {
		return fmt.Errorf("failed to marshal catalog: %w", marshalErr)
	}

	if writeErr := os.WriteFile(c.path, data, 0644); writeErr != nil {
		return fmt.Errorf("failed to write catalog: %w", writeErr)
	}
	return nil
}

// Find resolves the record for id, if any.
func (c *Catalog) Find(id string) (Record, bool) {
	for _, record := range c.Load() {
		if record.ID == id {
			return record, true
		}
	}
	return Record{}, false
}
