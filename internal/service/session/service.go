package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/conversation"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/imaging"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrNoEntries        = errors.New("history is empty")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

// Service owns every active session's conversation state. History is
// append-only: after creation only an entry's rating and pin flag may change.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*state
	logger   *zerolog.Logger
}

type state struct {
	id           string
	createdAt    time.Time
	version      uint64
	history      []conversation.Entry
	image        *imaging.Image
	persistOptIn bool
	achievements conversation.Achievements
	watchers     map[chan conversation.Snapshot]struct{}
}

// NewService bootstraps the in-memory session store.
func NewService(logger *zerolog.Logger) *Service {
	return &Service{
		sessions: make(map[string]*state),
		logger:   logger,
	}
}

// CreateSession provisions a session. When the caller opted into persistence
// it passes the previously stored entries, which seed the history.
func (s *Service) CreateSession(_ context.Context, optIn bool, hydrated []conversation.Entry) conversation.Snapshot {
	st := &state{
		id:           uuid.NewString(),
		createdAt:    time.Now().UTC(),
		history:      make([]conversation.Entry, 0, 16),
		persistOptIn: optIn,
		watchers:     make(map[chan conversation.Snapshot]struct{}),
	}
	if optIn && len(hydrated) > 0 {
		st.history = append(st.history, hydrated...)
	}

	s.mu.Lock()
	s.sessions[st.id] = st
	s.mu.Unlock()

	s.logger.Info().Str("session_id", st.id).Bool("persist", optIn).
		Int("hydrated", len(st.history)).Msg("session created")

	return st.snapshot()
}

// AppendEntry records a new exchange with a fresh ID and timestamp. The entry
// starts unrated and unpinned. It never fails for a live session.
func (s *Service) AppendEntry(_ context.Context, sessionID, question, answer string) (conversation.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return conversation.Entry{}, ErrSessionNotFound
	}

	entry := conversation.Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().Format(conversation.TimestampLayout),
		Question:  question,
		Answer:    answer,
	}
	st.history = append(st.history, entry)
	st.bump()
	return entry, nil
}

// SetRating mutates an entry's rating in place. Values outside [1,5] are
// rejected and leave the entry untouched.
func (s *Service) SetRating(_ context.Context, sessionID, entryID string, value int) error {
	if value < 1 || value > 5 {
		return ErrRatingOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	for i := range st.history {
		if st.history[i].ID == entryID {
			st.history[i].Rating = value
			st.bump()
			return nil
		}
	}
	return ErrEntryNotFound
}

// TogglePin flips an entry's pin flag and returns the new value.
func (s *Service) TogglePin(_ context.Context, sessionID, entryID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return false, ErrSessionNotFound
	}

	for i := range st.history {
		if st.history[i].ID == entryID {
			st.history[i].Pinned = !st.history[i].Pinned
			st.bump()
			return st.history[i].Pinned, nil
		}
	}
	return false, ErrEntryNotFound
}

// ClearHistory empties the conversation. The current image and achievements
// are untouched.
func (s *Service) ClearHistory(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	st.history = st.history[:0]
	st.bump()
	return nil
}

// SetImage replaces the session image wholesale; nil clears it (used after a
// decode failure). The image lives in memory only.
func (s *Service) SetImage(_ context.Context, sessionID string, img *imaging.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	st.image = img
	st.bump()
	return nil
}

// RecordFirstUpload marks the first successful upload; later calls are no-ops.
func (s *Service) RecordFirstUpload(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	if !st.achievements.FirstUploadDone {
		st.achievements.FirstUploadDone = true
		st.bump()
	}
	return nil
}

// IncrementQuestionCounter bumps the per-session question counter. A send
// attempt counts regardless of whether the answer carries an error string.
func (s *Service) IncrementQuestionCounter(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	st.achievements.QuestionsToday++
	st.bump()
	return nil
}

// SetPersistOptIn toggles mirroring of history mutations to durable storage.
func (s *Service) SetPersistOptIn(_ context.Context, sessionID string, optIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	st.persistOptIn = optIn
	st.bump()
	return nil
}

// Snapshot returns an immutable copy of the full session state.
func (s *Service) Snapshot(_ context.Context, sessionID string) (conversation.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return conversation.Snapshot{}, ErrSessionNotFound
	}
	return st.snapshot(), nil
}

// History returns a copy of the stored entries.
func (s *Service) History(_ context.Context, sessionID string) ([]conversation.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]conversation.Entry, len(st.history))
	copy(copied, st.history)
	return copied, nil
}

// Image returns the current in-memory image handle, or nil when none is set.
func (s *Service) Image(_ context.Context, sessionID string) (*imaging.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st.image, nil
}

// PersistOptIn reports whether history mutations are mirrored to disk.
func (s *Service) PersistOptIn(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return false, ErrSessionNotFound
	}
	return st.persistOptIn, nil
}

// LatestEntry returns the most recent exchange.
func (s *Service) LatestEntry(_ context.Context, sessionID string) (conversation.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return conversation.Entry{}, ErrSessionNotFound
	}
	if len(st.history) == 0 {
		return conversation.Entry{}, ErrNoEntries
	}
	return st.history[len(st.history)-1], nil
}

func (st *state) snapshot() conversation.Snapshot {
	history := make([]conversation.Entry, len(st.history))
	copy(history, st.history)

	snap := conversation.Snapshot{
		SessionID:    st.id,
		CreatedAt:    st.createdAt,
		Version:      st.version,
		History:      history,
		PersistOptIn: st.persistOptIn,
		Achievements: st.achievements,
	}
	if st.image != nil {
		snap.Image = &conversation.ImageInfo{
			MIMEType: st.image.MIMEType,
			Width:    st.image.Width,
			Height:   st.image.Height,
		}
	}
	return snap
}

// bump advances the state version and fans the fresh snapshot out to
// watchers. Callers hold the service write lock.
func (st *state) bump() {
	st.version++
	if len(st.watchers) == 0 {
		return
	}
	snap := st.snapshot()
	for ch := range st.watchers {
		select {
		case ch <- snap:
		default:
			// Slow watchers drop frames rather than block mutations.
		}
	}
}
