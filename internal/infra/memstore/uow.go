package memstore

import (
	"context"

	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) WithinProvider(ctx context.Context, providerID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	release, err := u.store.locks.acquire(ctx, providerID)
	if err != nil {
		return errs.Wrap(err, "acquire provider lock")
	}
	defer release()
	return u.Within(ctx, fn)
}

// Within stages writes and applies them atomically when fn succeeds.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	t := newWriteTx(u.store)
	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.commit()
}

// WithinReadOnly runs fn under the store's read lock, so every read sees the
// same state.
func (u *UnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	return fn(ctx, &tx{store: u.store, readOnly: true})
}
