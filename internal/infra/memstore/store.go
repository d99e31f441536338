// Package memstore keeps catalog, holds and appointments in process memory.
// It backs single-instance deployments and the use case tests.
package memstore

import (
	"context"
	"sync"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/domain/catalog"
	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/schedule"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	tenants      map[uuid.UUID]catalog.Tenant
	providers    map[uuid.UUID]catalog.Provider
	services     map[uuid.UUID]catalog.Service
	exceptions   []schedule.Exception
	holds        map[uuid.UUID]hold.Hold
	appointments map[uuid.UUID]appointment.Appointment

	locks providerLocks
}

func New() *Store {
	return &Store{
		tenants:      make(map[uuid.UUID]catalog.Tenant),
		providers:    make(map[uuid.UUID]catalog.Provider),
		services:     make(map[uuid.UUID]catalog.Service),
		holds:        make(map[uuid.UUID]hold.Hold),
		appointments: make(map[uuid.UUID]appointment.Appointment),
		locks:        providerLocks{m: make(map[uuid.UUID]chan struct{})},
	}
}

func (s *Store) PutTenant(t catalog.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[t.ID] = t
	return nil
}

func (s *Store) PutProvider(p catalog.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[p.ID] = p
	return nil
}

func (s *Store) PutService(svc catalog.Service) error {
	if err := svc.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
	return nil
}

func (s *Store) AddException(e schedule.Exception) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exceptions = append(s.exceptions, e)
	return nil
}

// Counts reports how many holds and appointments are stored, expired holds
// included.
func (s *Store) Counts() (holds, appointments int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.holds), len(s.appointments)
}

// providerLocks hands out one lock per provider. Acquisition honours context
// cancellation.
type providerLocks struct {
	mu sync.Mutex
	m  map[uuid.UUID]chan struct{}
}

func (l *providerLocks) acquire(ctx context.Context, id uuid.UUID) (func(), error) {
	l.mu.Lock()
	ch, ok := l.m[id]
	if !ok {
		ch = make(chan struct{}, 1)
		l.m[id] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
