package session

import (
	"context"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/conversation"
)

// Watch subscribes to state changes for one session. Every mutation delivers
// a fresh snapshot on the returned channel; the cancel func detaches the
// watcher and closes the channel.
func (s *Service) Watch(_ context.Context, sessionID string) (<-chan conversation.Snapshot, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan conversation.Snapshot, 8)
	st.watchers[ch] = struct{}{}

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if st, ok := s.sessions[sessionID]; ok {
			if _, subscribed := st.watchers[ch]; subscribed {
				delete(st.watchers, ch)
				close(ch)
			}
		}
	}
	return ch, cancel, nil
}
