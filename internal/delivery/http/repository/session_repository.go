package repository

import (
	"context"
	"sync"
	"time"

	"github.com/evandrarf/codetutor/internal/delivery/http/usecase"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSessionTTL  = 2 * time.Hour
	DefaultMaxSessions = 10000
)

type (
	SessionRepository interface {
		// FindOrCreate returns the session for id, creating one under a fresh id when unknown.
		FindOrCreate(id string) (string, *usecase.TutorSession)
		Find(id string) (*usecase.TutorSession, bool)
		Sweep(now time.Time) int
		Len() int
		StartSweeper(ctx context.Context, interval time.Duration)
		WaitIdle(ctx context.Context) error
	}

	sessionEntry struct {
		session  *usecase.TutorSession
		lastSeen time.Time
	}

	sessionRepository struct {
		mu       sync.Mutex
		sessions map[string]*sessionEntry
		ttl      time.Duration
		max      int
		analyzer usecase.CodeAnalysisUsecase
		log      *logrus.Logger
	}
)

func NewSessionRepository(analyzer usecase.CodeAnalysisUsecase, ttl time.Duration, maxSessions int, log *logrus.Logger) SessionRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &sessionRepository{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		max:      maxSessions,
		analyzer: analyzer,
		log:      log,
	}
}

func (r *sessionRepository) FindOrCreate(id string) (string, *usecase.TutorSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.sessions[id]; ok {
		entry.lastSeen = time.Now()
		return id, entry.session
	}

	if len(r.sessions) >= r.max {
		r.evictOldestIdle()
	}

	id = uuid.NewString()
	session := usecase.NewTutorSession(r.analyzer, r.log)
	r.sessions[id] = &sessionEntry{session: session, lastSeen: time.Now()}
	r.log.WithField("session_id", id).Debug("tutor session created")
	return id, session
}

// evictOldestIdle drops the least recently seen session without an analysis
// in flight. Callers hold r.mu.
func (r *sessionRepository) evictOldestIdle() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, entry := range r.sessions {
		if entry.session.Snapshot().IsAnalyzing {
			continue
		}
		if oldestID == "" || entry.lastSeen.Before(oldest) {
			oldestID, oldest = id, entry.lastSeen
		}
	}
	if oldestID == "" {
		return
	}
	delete(r.sessions, oldestID)
	r.log.WithField("session_id", oldestID).Debug("tutor session evicted at capacity")
}

func (r *sessionRepository) Find(id string) (*usecase.TutorSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.session, true
}

// Sweep drops sessions idle for longer than the TTL. Sessions with an
// analysis in flight are kept.
func (r *sessionRepository) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.sessions {
		if now.Sub(entry.lastSeen) <= r.ttl {
			continue
		}
		if entry.session.Snapshot().IsAnalyzing {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

func (r *sessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *sessionRepository) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 4
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := r.Sweep(now); n > 0 {
					r.log.WithField("removed", n).Info("expired tutor sessions swept")
				}
			}
		}
	}()
}

// WaitIdle blocks until every in-flight analysis has finished or ctx is done.
func (r *sessionRepository) WaitIdle(ctx context.Context) error {
	r.mu.Lock()
	sessions := make([]*usecase.TutorSession, 0, len(r.sessions))
	for _, entry := range r.sessions {
		sessions = append(sessions, entry.session)
	}
	r.mu.Unlock()

	for _, session := range sessions {
		if err := session.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}
