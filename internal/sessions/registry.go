package sessions

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rjbuenaventura/kusina-pos/internal/checkout"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
)

// CoordinatorFactory builds the submit machine for a newly opened lane.
type CoordinatorFactory func() (*checkout.Coordinator, error)

// Registry tracks the open cashier sessions of one terminal process.
// Sessions live only in memory; durable state belongs to the back office.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*Session
	coordinator CoordinatorFactory
	now         func() time.Time
}

// NewRegistry builds a registry around a per-session coordinator factory.
func NewRegistry(factory CoordinatorFactory) (*Registry, error) {
	if factory == nil {
		return nil, fmt.Errorf("coordinator factory required")
	}
	return &Registry{
		sessions:    make(map[uuid.UUID]*Session),
		coordinator: factory,
		now:         time.Now,
	}, nil
}

// Open creates a fresh session with an empty cart and default draft.
func (r *Registry) Open() (*Session, error) {
	coord, err := r.coordinator()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build checkout coordinator")
	}

	session := &Session{
		ID:        uuid.New(),
		CreatedAt: r.now(),
		draft:     checkout.DefaultDraft(),
		coord:     coord,
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session, nil
}

// Get returns the session for the given id.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	return session, nil
}

// Close drops the session. An in-flight submit is allowed to finish
// against the back office; only the local handle goes away.
func (r *Registry) Close(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	delete(r.sessions, id)
	return nil
}
