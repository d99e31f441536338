package memstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"slot-booker/internal/domain/appointment"
	"slot-booker/internal/domain/catalog"
	"slot-booker/internal/domain/hold"
	"slot-booker/internal/domain/schedule"
	"slot-booker/internal/domain/timerange"
	"slot-booker/internal/infra"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in read-only transaction")

type tx struct {
	store    *Store
	readOnly bool

	newHolds     map[uuid.UUID]hold.Hold
	deletedHolds map[uuid.UUID]struct{}
	newAppts     map[uuid.UUID]appointment.Appointment
	updatedAppts map[uuid.UUID]appointment.Appointment
}

func newWriteTx(store *Store) *tx {
	return &tx{
		store:        store,
		newHolds:     make(map[uuid.UUID]hold.Hold),
		deletedHolds: make(map[uuid.UUID]struct{}),
		newAppts:     make(map[uuid.UUID]appointment.Appointment),
		updatedAppts: make(map[uuid.UUID]appointment.Appointment),
	}
}

func (t *tx) Catalog() shared.CatalogReads               { return t }
func (t *tx) Occupancy() shared.OccupancyReads           { return t }
func (t *tx) Holds() shared.HoldRepository               { return holdRepo{t} }
func (t *tx) Appointments() shared.AppointmentRepository { return appointmentRepo{t} }

// view runs fn against the committed state. Read-only transactions already
// hold the read lock for their whole lifetime.
func (t *tx) view(fn func()) {
	if t.readOnly {
		fn()
		return
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	fn()
}

func (t *tx) TenantByID(_ context.Context, id uuid.UUID) (*catalog.Tenant, error) {
	var (
		v  catalog.Tenant
		ok bool
	)
	t.view(func() { v, ok = t.store.tenants[id] })
	if !ok {
		return nil, infra.NotFound("tenant not found")
	}
	return &v, nil
}

func (t *tx) ProviderByID(_ context.Context, id uuid.UUID) (*catalog.Provider, error) {
	var (
		v  catalog.Provider
		ok bool
	)
	t.view(func() { v, ok = t.store.providers[id] })
	if !ok {
		return nil, infra.NotFound("provider not found")
	}
	return &v, nil
}

func (t *tx) ServiceByID(_ context.Context, id uuid.UUID) (*catalog.Service, error) {
	var (
		v  catalog.Service
		ok bool
	)
	t.view(func() { v, ok = t.store.services[id] })
	if !ok {
		return nil, infra.NotFound("service not found")
	}
	return &v, nil
}

func (t *tx) Exceptions(_ context.Context, tenantID, providerID uuid.UUID, from, to civil.Date) ([]schedule.Exception, error) {
	var out []schedule.Exception
	t.view(func() {
		for _, e := range t.store.exceptions {
			if e.TenantID != tenantID {
				continue
			}
			if e.ProviderID != nil && *e.ProviderID != providerID {
				continue
			}
			if e.EndDate.Before(from) || e.StartDate.After(to) {
				continue
			}
			out = append(out, e)
		}
	})
	return out, nil
}

// holdsView merges committed holds with this transaction's staged changes.
func (t *tx) holdsView() map[uuid.UUID]hold.Hold {
	var merged map[uuid.UUID]hold.Hold
	t.view(func() { merged = maps.Clone(t.store.holds) })
	for id := range t.deletedHolds {
		delete(merged, id)
	}
	maps.Copy(merged, t.newHolds)
	return merged
}

func (t *tx) appointmentsView() map[uuid.UUID]appointment.Appointment {
	var merged map[uuid.UUID]appointment.Appointment
	t.view(func() { merged = maps.Clone(t.store.appointments) })
	maps.Copy(merged, t.newAppts)
	maps.Copy(merged, t.updatedAppts)
	return merged
}

func (t *tx) LiveHolds(_ context.Context, providerID uuid.UUID, window timerange.Interval, now time.Time) ([]*hold.Hold, error) {
	var out []*hold.Hold
	for _, h := range t.holdsView() {
		if h.ProviderID() != providerID || h.IsExpired(now) || !h.Blocked().Overlaps(window) {
			continue
		}
		out = append(out, &h)
	}
	slices.SortFunc(out, func(a, b *hold.Hold) int { return a.Blocked().Start.Compare(b.Blocked().Start) })
	return out, nil
}

func (t *tx) ConfirmedAppointments(_ context.Context, providerID uuid.UUID, window timerange.Interval) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range t.appointmentsView() {
		if a.ProviderID() != providerID || !a.Status().Blocks() || !a.Blocked().Overlaps(window) {
			continue
		}
		out = append(out, &a)
	}
	slices.SortFunc(out, func(a, b *appointment.Appointment) int { return a.Blocked().Start.Compare(b.Blocked().Start) })
	return out, nil
}

type holdRepo struct{ t *tx }

func (r holdRepo) Create(_ context.Context, h *hold.Hold) error {
	if r.t.readOnly {
		return errReadOnly
	}
	r.t.newHolds[h.ID()] = *h
	return nil
}

func (r holdRepo) FindByID(_ context.Context, id uuid.UUID) (*hold.Hold, error) {
	h, ok := r.t.holdsView()[id]
	if !ok {
		return nil, infra.NotFound("hold not found")
	}
	return &h, nil
}

func (r holdRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.t.readOnly {
		return errReadOnly
	}
	if _, ok := r.t.holdsView()[id]; !ok {
		return infra.NotFound("hold not found")
	}
	delete(r.t.newHolds, id)
	r.t.deletedHolds[id] = struct{}{}
	return nil
}

func (r holdRepo) DeleteExpired(_ context.Context, now time.Time, limit int) ([]*hold.Hold, error) {
	if r.t.readOnly {
		return nil, errReadOnly
	}
	var expired []*hold.Hold
	for _, h := range r.t.holdsView() {
		if h.IsExpired(now) {
			expired = append(expired, &h)
		}
	}
	slices.SortFunc(expired, func(a, b *hold.Hold) int { return a.ExpiresAt().Compare(b.ExpiresAt()) })
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	for _, h := range expired {
		delete(r.t.newHolds, h.ID())
		r.t.deletedHolds[h.ID()] = struct{}{}
	}
	return expired, nil
}

type appointmentRepo struct{ t *tx }

func (r appointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	if r.t.readOnly {
		return errReadOnly
	}
	r.t.newAppts[a.ID()] = *a
	return nil
}

func (r appointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.t.appointmentsView()[id]
	if !ok {
		return nil, infra.NotFound("appointment not found")
	}
	return &a, nil
}

func (r appointmentRepo) UpdateStatus(_ context.Context, a *appointment.Appointment) error {
	if r.t.readOnly {
		return errReadOnly
	}
	if _, ok := r.t.newAppts[a.ID()]; ok {
		r.t.newAppts[a.ID()] = *a
		return nil
	}
	r.t.updatedAppts[a.ID()] = *a
	return nil
}

func (r appointmentRepo) ListBySession(_ context.Context, sessionID string, after *shared.PageKey, limit int) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range r.t.appointmentsView() {
		if a.SessionID() != sessionID {
			continue
		}
		if after != nil && !after.Less(a.Window().Start, a.ID()) {
			continue
		}
		out = append(out, &a)
	}
	slices.SortFunc(out, func(a, b *appointment.Appointment) int {
		if c := a.Window().Start.Compare(b.Window().Start); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// commit re-checks the constraints a database would enforce, then applies
// the staged writes under the write lock.
func (t *tx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range t.newHolds {
		if _, exists := s.holds[id]; exists {
			return infra.WrapRepoErr("hold already exists", nil, infra.KindDuplicateKey)
		}
	}
	for id := range t.updatedAppts {
		if _, exists := s.appointments[id]; !exists {
			return infra.NotFound("appointment not found")
		}
	}
	for id, a := range t.newAppts {
		if _, exists := s.appointments[id]; exists {
			return infra.WrapRepoErr("appointment already exists", nil, infra.KindDuplicateKey)
		}
		for _, other := range s.appointments {
			if other.HoldID() == a.HoldID() {
				return infra.WrapRepoErr("hold already confirmed", nil, infra.KindDuplicateKey)
			}
			if other.ProviderID() == a.ProviderID() && other.Status().Blocks() && a.Status().Blocks() &&
				other.Blocked().Overlaps(a.Blocked()) {
				if upd, ok := t.updatedAppts[other.ID()]; ok && !upd.Status().Blocks() {
					continue
				}
				return infra.WrapRepoErr("overlapping confirmed appointment", nil, infra.KindConflict)
			}
		}
	}

	for id := range t.deletedHolds {
		delete(s.holds, id)
	}
	maps.Copy(s.holds, t.newHolds)
	maps.Copy(s.appointments, t.newAppts)
	maps.Copy(s.appointments, t.updatedAppts)
	return nil
}
