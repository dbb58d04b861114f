package session

import (
	"context"
	"sync"
	"time"

	"movieparadise/movie"
	"movieparadise/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store keeps the live sessions in memory. Nothing is persisted.
type Store struct {
	searcher movie.Service
	logger   *zap.SugaredLogger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore(searcher movie.Service, l *zap.SugaredLogger) *Store {
	if l == nil {
		l = logger.NOOPLogger
	}
	return &Store{
		searcher: searcher,
		logger:   l,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session with the given id and marks it as seen.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if ok {
		s.touch(st.now())
	}
	return s, ok
}

func (st *Store) Create() *Session {
	s := New(uuid.NewString(), st.searcher, st.logger)
	s.touch(st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Prune drops sessions idle for longer than maxIdle and reports how many
// were removed.
func (st *Store) Prune(maxIdle time.Duration) int {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > maxIdle {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor prunes idle sessions every interval until ctx is done.
func (st *Store) RunJanitor(ctx context.Context, maxIdle time.Duration) {
	interval := maxIdle / 2
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Prune(maxIdle); n > 0 {
				st.logger.Infow("pruned idle sessions", "removed", n, "remaining", st.Len())
			}
		}
	}
}
