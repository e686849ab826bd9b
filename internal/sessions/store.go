package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the age after which a session stops resolving.
const DefaultTTL = 24 * time.Hour

// Analysis mirrors the structured analysis stored alongside a session.
type Analysis struct {
	MissingKeywords []string `json:"missing_keywords"`
	PresentKeywords []string `json:"present_keywords"`
	Recommendations []string `json:"recommendations"`
	MatchScore      float64  `json:"match_score"`
	Summary         string   `json:"summary"`
}

// Record is the context kept for follow-up chatbot turns.
type Record struct {
	Analysis       Analysis  `json:"analysis"`
	ResumeText     string    `json:"resumeText"`
	JobDescription string    `json:"jobDescription"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Store keeps session records in memory and is safe for concurrent use.
// Nothing is persisted; a restart drops every session.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]Record
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithIDGenerator overrides the session id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore constructs an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		byID:  make(map[string]Record),
		ttl:   DefaultTTL,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a random session identifier.
func (s *Store) NewID() string {
	return s.newID()
}

// Get returns the record for id. Unknown and expired ids both report false.
func (s *Store) Get(id string) (Record, bool) {
	if id == "" {
		return Record{}, false
	}
	s.mu.RLock()
	rec, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok || s.expired(rec, s.now()) {
		return Record{}, false
	}
	return rec, true
}

// Put stores record under id.
func (s *Store) Put(id string, record Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = record
}

// Create stores record under a fresh id and returns it. An existing record is never replaced.
// A zero CreatedAt is stamped from the store clock.
func (s *Store) Create(record Record) string {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		id := s.newID()
		if _, taken := s.byID[id]; taken {
			continue
		}
		s.byID[id] = record
		return id
	}
}

// Delete removes id and reports whether it was present.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

// SweepExpired removes every record older than the TTL at now and returns how many were removed.
func (s *Store) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, rec := range s.byID {
		if s.expired(rec, now) {
			delete(s.byID, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored records, including expired ones not yet swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// RunSweeper calls SweepExpired every interval until ctx is done.
// onSweep, when non-nil, receives the number of removed records.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.SweepExpired(s.now())
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

func (s *Store) expired(rec Record, now time.Time) bool {
	return now.Sub(rec.CreatedAt) > s.ttl
}
