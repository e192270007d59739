// Package history mirrors conversation text to a single JSON document on
// disk. Persistence is opt-in, covers entries only (never image data), and
// favors availability: a missing or corrupt file reads as an empty history.
package history

import (
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/metrics"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/conversation"
)

// Store writes wholesale history snapshots to a fixed path.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *zerolog.Logger
}

type document struct {
	SavedAt    string               `json:"saved_at,omitempty"`
	ExportedAt string               `json:"exported_at,omitempty"`
	Items      []conversation.Entry `json:"items"`
}

// NewStore returns a Store persisting to the given path.
func NewStore(path string, logger *zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Save overwrites the history file with the given entries. When optIn is
// false it is a no-op. A write failure is reported to the caller for display
// and never terminates anything; the in-memory history stays authoritative.
func (s *Store) Save(items []conversation.Entry, optIn bool) error {
	if !optIn {
		return nil
	}

	if items == nil {
		items = []conversation.Entry{}
	}
	payload := document{
		SavedAt: time.Now().Format(conversation.TimestampLayout),
		Items:   items,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		metrics.IncHistorySave("error")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.path, data); err != nil {
		metrics.IncHistorySave("error")
		s.logger.Warn().Err(err).Str("path", s.path).Msg("could not save history to disk")
		return err
	}

	metrics.IncHistorySave("ok")
	return nil
}

// Load reads previously saved entries. A missing, unreadable, or malformed
// file is treated as an empty history, never as an error.
func (s *Store) Load() []conversation.Entry {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug().Err(err).Str("path", s.path).Msg("history file unreadable, starting empty")
		}
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Debug().Err(err).Str("path", s.path).Msg("history file malformed, starting empty")
		return nil
	}
	return doc.Items
}

// Export serializes the entries for user download. It has no effect on the
// history file.
func (s *Store) Export(items []conversation.Entry) ([]byte, error) {
	if items == nil {
		items = []conversation.Entry{}
	}
	payload := document{
		ExportedAt: time.Now().Format(conversation.TimestampLayout),
		Items:      items,
	}
	return json.MarshalIndent(payload, "", "  ")
}

// AnswerText returns a single answer as a plain-text download buffer.
func (s *Store) AnswerText(entry conversation.Entry) []byte {
	return []byte(entry.Answer)
}

// writeAtomic stages the document in a temp file, syncs it, then renames it
// over the target so readers never observe a partial write.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
