package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"nativedelight/internal/apperrors"
	"nativedelight/internal/catalog"
	"nativedelight/internal/checkout"
	"nativedelight/internal/logger"
)

const (
	DefaultTTL      = 2 * time.Hour
	DefaultCapacity = 10000
)

type Config struct {
	// TTL is the idle time after which a session is dropped.
	TTL      time.Duration
	Capacity int
	Checkout checkout.Config
}

// Manager owns the in-memory sessions. Sessions are never persisted.
type Manager struct {
	provider  catalog.Provider
	payments  checkout.PaymentInitializer
	cfg       Config
	scheduler checkout.Scheduler
	observer  Observer
	logg      *logger.Logger

	sessions *expirable.LRU[string, *Session]
}

func NewManager(provider catalog.Provider, payments checkout.PaymentInitializer, cfg Config, observer Observer, logg *logger.Logger) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if logg == nil {
		logg = logger.Nop()
	}

	m := &Manager{
		provider:  provider,
		payments:  payments,
		cfg:       cfg,
		scheduler: checkout.ClockScheduler{},
		observer:  observer,
		logg:      logg,
	}
	m.sessions = expirable.NewLRU[string, *Session](cfg.Capacity, m.onEvict, cfg.TTL)
	return m
}

func (m *Manager) onEvict(id string, s *Session) {
	if s.Close() {
		m.observer.SessionClosed()
		m.logg.Debug(m.logg.WithSessionID(context.Background(), id), "session closed")
	}
}

// Create loads a fresh catalog snapshot and starts a session on it. A catalog
// failure is returned as a load error and no session is created.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	snap, err := catalog.Load(ctx, m.provider)
	if err != nil {
		m.logg.Error(ctx, "catalog load failed", err)
		return nil, err
	}

	id := uuid.NewString()
	s := newSession(id, snap, m.cfg.Checkout, m.scheduler, m.payments, m.observer)
	m.sessions.Add(id, s)
	m.observer.SessionOpened()

	m.logg.Info(m.logg.WithFields(ctx, map[string]any{
		"session_id": id,
		"categories": len(snap.Categories),
		"items":      len(snap.Items),
	}), "session created")
	return s, nil
}

// Get returns a live session and extends its idle deadline.
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok || s.isClosed() {
		return nil, apperrors.New(apperrors.CodeSession, "session expired")
	}
	m.sessions.Add(id, s)
	if s.isClosed() {
		m.sessions.Remove(id)
		return nil, apperrors.New(apperrors.CodeSession, "session expired")
	}
	return s, nil
}

// Remove drops a session immediately.
func (m *Manager) Remove(id string) {
	m.sessions.Remove(id)
}

func (m *Manager) Len() int {
	return m.sessions.Len()
}

// Close drops every session, cancelling pending resets.
func (m *Manager) Close() {
	m.sessions.Purge()
}
