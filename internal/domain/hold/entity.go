package hold

import (
	"errors"
	"strings"
	"time"

	"slot-booker/internal/domain/timerange"

	"github.com/google/uuid"
)

var (
	ErrEmptySession = errors.New("session id is required")
	ErrInvalidTTL   = errors.New("hold ttl must be positive")
	ErrNotOwner     = errors.New("hold belongs to another session")
	ErrExpired      = errors.New("hold has expired")
)

// Spec identifies the slot being held.
type Spec struct {
	TenantID     uuid.UUID
	ProviderID   uuid.UUID
	ServiceID    uuid.UUID
	Window       timerange.Interval
	BufferBefore time.Duration
	BufferAfter  time.Duration
}

// Hold reserves a slot for one booking session until expiresAt.
type Hold struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	providerID uuid.UUID
	serviceID  uuid.UUID
	window     timerange.Interval
	blocked    timerange.Interval
	sessionID  string
	createdAt  time.Time
	expiresAt  time.Time
}

func New(spec Spec, sessionID string, now time.Time, ttl time.Duration) (*Hold, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrEmptySession
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if spec.Window.IsEmpty() {
		return nil, timerange.ErrEmptyInterval
	}
	return &Hold{
		id:         uuid.New(),
		tenantID:   spec.TenantID,
		providerID: spec.ProviderID,
		serviceID:  spec.ServiceID,
		window:     spec.Window,
		blocked:    spec.Window.Expand(spec.BufferBefore, spec.BufferAfter),
		sessionID:  sessionID,
		createdAt:  now,
		expiresAt:  now.Add(ttl),
	}, nil
}

func Reconstruct(
	id, tenantID, providerID, serviceID uuid.UUID,
	window, blocked timerange.Interval,
	sessionID string,
	createdAt, expiresAt time.Time,
) *Hold {
	return &Hold{
		id:         id,
		tenantID:   tenantID,
		providerID: providerID,
		serviceID:  serviceID,
		window:     window,
		blocked:    blocked,
		sessionID:  sessionID,
		createdAt:  createdAt,
		expiresAt:  expiresAt,
	}
}

// IsExpired treats the expiry instant itself as expired.
func (h *Hold) IsExpired(now time.Time) bool {
	return !now.Before(h.expiresAt)
}

func (h *Hold) OwnedBy(sessionID string) bool {
	return sessionID != "" && h.sessionID == sessionID
}

// Matches reports whether h is the same session's hold on the same slot.
func (h *Hold) Matches(spec Spec, sessionID string) bool {
	return h.OwnedBy(sessionID) &&
		h.providerID == spec.ProviderID &&
		h.serviceID == spec.ServiceID &&
		h.window.Start.Equal(spec.Window.Start) &&
		h.window.End.Equal(spec.Window.End)
}

// CheckRelease enforces ownership; expiry is the caller's concern.
func (h *Hold) CheckRelease(sessionID string) error {
	if !h.OwnedBy(sessionID) {
		return ErrNotOwner
	}
	return nil
}

// CheckConfirm enforces ownership first, then expiry.
func (h *Hold) CheckConfirm(sessionID string, now time.Time) error {
	if !h.OwnedBy(sessionID) {
		return ErrNotOwner
	}
	if h.IsExpired(now) {
		return ErrExpired
	}
	return nil
}

func (h *Hold) ID() uuid.UUID               { return h.id }
func (h *Hold) TenantID() uuid.UUID         { return h.tenantID }
func (h *Hold) ProviderID() uuid.UUID       { return h.providerID }
func (h *Hold) ServiceID() uuid.UUID        { return h.serviceID }
func (h *Hold) Window() timerange.Interval  { return h.window }
func (h *Hold) Blocked() timerange.Interval { return h.blocked }
func (h *Hold) SessionID() string           { return h.sessionID }
func (h *Hold) CreatedAt() time.Time        { return h.createdAt }
func (h *Hold) ExpiresAt() time.Time        { return h.expiresAt }
