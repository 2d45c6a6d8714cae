package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pokedex-catalog/models"
)

// DefaultSessionTTL is how long an idle browse session is kept
const DefaultSessionTTL = 30 * time.Minute

// SessionSnapshot is the externally visible state of a browse session
type SessionSnapshot struct {
	ID        string           `json:"id"`
	State     models.ViewState `json:"state"`
	Page      *models.Page     `json:"page,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type browseSession struct {
	id string

	mu         sync.Mutex
	generation uint64 // bumped by every view state change
	cancel     context.CancelFunc
	state      models.ViewState
	page       *models.Page
	touchedAt  time.Time
}

func (b *browseSession) snapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:        b.id,
		State:     b.state,
		Page:      b.page,
		UpdatedAt: b.touchedAt,
	}
}

// SessionService keeps one ViewState per client. Only the computation for the
// newest view state of a session may store its page; older ones are cancelled
// and report ErrSuperseded.
type SessionService struct {
	catalog CatalogProviderInterface
	views   PageComputerInterface
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*browseSession
}

// NewSessionService creates a new SessionService
func NewSessionService(catalog CatalogProviderInterface, views PageComputerInterface, ttl time.Duration, logger *zap.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		catalog:  catalog,
		views:    views,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		sessions: make(map[string]*browseSession),
	}
}

// Create opens a session at the default view state and computes its first page
func (s *SessionService) Create(ctx context.Context) (SessionSnapshot, error) {
	sess := &browseSession{
		id:        uuid.NewString(),
		state:     models.DefaultViewState(),
		touchedAt: s.now(),
	}

	s.mu.Lock()
	s.pruneLocked()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("🆕 Session created", zap.String("session", sess.id))

	if _, err := s.Update(ctx, sess.id, sess.state); err != nil {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
		return SessionSnapshot{}, err
	}
	return s.Get(sess.id)
}

// Get returns the latest stored state of a session
func (s *SessionService) Get(id string) (SessionSnapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionSnapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Update moves a session to a new view state and computes its page.
// A call overtaken by a newer Update for the same session returns ErrSuperseded
// and leaves the newer result in place.
func (s *SessionService) Update(ctx context.Context, id string, state models.ViewState) (models.Page, error) {
	state, err := normalizeViewState(state)
	if err != nil {
		return models.Page{}, err
	}

	sess, err := s.lookup(id)
	if err != nil {
		return models.Page{}, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess.mu.Lock()
	sess.generation++
	gen := sess.generation
	if sess.cancel != nil {
		sess.cancel()
	}
	sess.cancel = cancel
	sess.touchedAt = s.now()
	sess.mu.Unlock()

	page, err := s.compute(runCtx, state)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.generation != gen {
		s.logger.Debug("⏭️  Discarding stale page", zap.String("session", id), zap.Uint64("generation", gen))
		return models.Page{}, ErrSuperseded
	}
	sess.cancel = nil
	if err != nil {
		return models.Page{}, err
	}

	sess.state = state
	sess.page = &page
	sess.touchedAt = s.now()
	return page, nil
}

func (s *SessionService) compute(ctx context.Context, state models.ViewState) (models.Page, error) {
	stubs, err := s.catalog.Stubs(ctx)
	if err != nil {
		return models.Page{}, err
	}
	return s.views.ComputePage(ctx, stubs, state)
}

func (s *SessionService) lookup(id string) (*browseSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// pruneLocked drops sessions idle for longer than the TTL. Caller holds s.mu.
func (s *SessionService) pruneLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.touchedAt.Before(cutoff) && sess.cancel == nil
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			s.logger.Debug("🧹 Session expired", zap.String("session", id))
		}
	}
}
