//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"slot-booker/internal/infra/events"
	"slot-booker/internal/infra/memstore"
	"slot-booker/internal/pkg/clock"
	"slot-booker/internal/pkg/errs"
	"slot-booker/internal/usecase/commands"
	"slot-booker/internal/usecase/shared"
	"slot-booker/tests/common/bookingtest"
	sharedmock "slot-booker/tests/mock/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	store   *memstore.Store
	uow     shared.UnitOfWork
	clock   *clock.MockClock
	holds   commands.HoldCommands
	confirm commands.ConfirmationCommands
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	catalog   []bookingtest.Option
	publisher shared.EventPublisher
	limiter   shared.RateLimiter
}

func withCatalog(opts ...bookingtest.Option) fixtureOption {
	return func(c *fixtureConfig) { c.catalog = append(c.catalog, opts...) }
}

func withPublisher(p shared.EventPublisher) fixtureOption {
	return func(c *fixtureConfig) { c.publisher = p }
}

func withLimiter(l shared.RateLimiter) fixtureOption {
	return func(c *fixtureConfig) { c.limiter = l }
}

// newFixture starts the clock at 08:00 on the reference Monday.
func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	var cfg fixtureConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	store := bookingtest.NewStore(t, cfg.catalog...)
	uow := memstore.NewUnitOfWork(store)
	clk := clock.NewMockClock(bookingtest.At(t, bookingtest.Monday, 8, 0))
	return &fixture{
		store:   store,
		uow:     uow,
		clock:   clk,
		holds:   commands.NewHoldCommands(uow, cfg.publisher, cfg.limiter, clk, commands.DefaultPolicy(), discard),
		confirm: commands.NewConfirmationCommands(uow, cfg.publisher, clk, discard),
	}
}

func placeInput(session string, date civil.Date, hh, mm int) commands.PlaceHoldInput {
	return commands.PlaceHoldInput{
		TenantID:   bookingtest.TenantID,
		ProviderID: bookingtest.ProviderID,
		ServiceID:  bookingtest.ServiceID,
		Date:       date,
		StartTime:  bookingtest.Clock(hh, mm),
		SessionID:  session,
	}
}

func (f *fixture) place(t *testing.T, session string, hh, mm int) *commands.HoldResult {
	t.Helper()
	res, err := f.holds.PlaceHold(context.Background(), placeInput(session, bookingtest.Monday, hh, mm))
	require.NoError(t, err)
	return res
}

func assertKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	assert.Truef(t, errs.Is(err, kind), "expected %q, got %v", kind, err)
}

func TestPlaceHold(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a hold expiring after the ttl", func(t *testing.T) {
		f := newFixture(t)
		res := f.place(t, "session-a", 10, 0)

		assert.False(t, res.Replayed)
		assert.Equal(t, bookingtest.At(t, bookingtest.Monday, 10, 0), res.Hold.Window().Start)
		assert.Equal(t, bookingtest.At(t, bookingtest.Monday, 11, 0), res.Hold.Window().End)
		assert.Equal(t, f.clock.Now().Add(10*time.Minute), res.Hold.ExpiresAt())
		assert.Equal(t, "session-a", res.Hold.SessionID())
	})

	t.Run("replays the same session's hold", func(t *testing.T) {
		f := newFixture(t)
		first := f.place(t, "session-a", 10, 0)
		f.clock.Add(time.Minute)
		second := f.place(t, "session-a", 10, 0)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.Hold.ID(), second.Hold.ID())
		assert.Equal(t, first.Hold.ExpiresAt(), second.Hold.ExpiresAt())
		holds, _ := f.store.Counts()
		assert.Equal(t, 1, holds)
	})

	tests := []struct {
		name  string
		setup func(t *testing.T, f *fixture)
		input commands.PlaceHoldInput
		kind  error
	}{
		{
			name:  "slot held by another session",
			setup: func(t *testing.T, f *fixture) { f.place(t, "session-a", 10, 0) },
			input: placeInput("session-b", bookingtest.Monday, 10, 0),
			kind:  errs.ErrSlotUnavailable,
		},
		{
			name:  "partially overlapping slot",
			setup: func(t *testing.T, f *fixture) { f.place(t, "session-a", 10, 0) },
			input: placeInput("session-b", bookingtest.Monday, 10, 30),
			kind:  errs.ErrSlotUnavailable,
		},
		{
			name:  "same session asking for an overlapping start",
			setup: func(t *testing.T, f *fixture) { f.place(t, "session-a", 10, 0) },
			input: placeInput("session-a", bookingtest.Monday, 10, 15),
			kind:  errs.ErrSlotUnavailable,
		},
		{
			name: "start in the past",
			setup: func(t *testing.T, f *fixture) {
				f.clock.Set(bookingtest.At(t, bookingtest.Monday, 12, 0))
			},
			input: placeInput("session-a", bookingtest.Monday, 10, 0),
			kind:  errs.ErrSlotUnavailable,
		},
		{
			name:  "regularly closed day",
			input: placeInput("session-a", bookingtest.Saturday, 10, 0),
			kind:  errs.ErrSlotUnavailable,
		},
		{
			name:  "service would run past closing",
			input: placeInput("session-a", bookingtest.Monday, 16, 30),
			kind:  errs.ErrSlotUnavailable,
		},
		{
			name:  "before opening",
			input: placeInput("session-a", bookingtest.Monday, 8, 30),
			kind:  errs.ErrSlotUnavailable,
		},
		{
			name: "unknown provider",
			input: func() commands.PlaceHoldInput {
				in := placeInput("session-a", bookingtest.Monday, 10, 0)
				in.ProviderID = uuid.New()
				return in
			}(),
			kind: errs.ErrNotFound,
		},
		{
			name: "unknown service",
			input: func() commands.PlaceHoldInput {
				in := placeInput("session-a", bookingtest.Monday, 10, 0)
				in.ServiceID = uuid.New()
				return in
			}(),
			kind: errs.ErrNotFound,
		},
		{
			name:  "blank session",
			input: placeInput("  ", bookingtest.Monday, 10, 0),
			kind:  errs.ErrInvalidInput,
		},
		{
			name:  "invalid date",
			input: placeInput("session-a", civil.Date{Year: 2030, Month: time.February, Day: 30}, 10, 0),
			kind:  errs.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			_, err := f.holds.PlaceHold(ctx, tt.input)
			assertKind(t, err, tt.kind)
		})
	}
}

func TestPlaceHold_ConcurrentRequestsExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	const sessions = 24

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []string
		conflicts int
	)
	start := make(chan struct{})
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			session := uuid.NewString()
			_, err := f.holds.PlaceHold(context.Background(), placeInput(session, bookingtest.Monday, 10, 0))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, session)
			case errs.Is(err, errs.ErrSlotUnavailable):
				conflicts++
			default:
				t.Errorf("session %d: unexpected error %v", i, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Len(t, winners, 1)
	assert.Equal(t, sessions-1, conflicts)
}

func TestPlaceHold_SlotReturnsAfterTTL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.place(t, "session-a", 10, 0)
	_, err := f.holds.PlaceHold(ctx, placeInput("session-b", bookingtest.Monday, 10, 0))
	assertKind(t, err, errs.ErrSlotUnavailable)

	f.clock.Add(10 * time.Minute)
	res, err := f.holds.PlaceHold(ctx, placeInput("session-b", bookingtest.Monday, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, "session-b", res.Hold.SessionID())
}

func TestPlaceHold_BufferKeepsGapFree(t *testing.T) {
	f := newFixture(t, withCatalog(bookingtest.WithBuffer(15)))
	ctx := context.Background()

	f.place(t, "session-a", 10, 0)

	_, err := f.holds.PlaceHold(ctx, placeInput("session-b", bookingtest.Monday, 11, 0))
	assertKind(t, err, errs.ErrSlotUnavailable)

	res, err := f.holds.PlaceHold(ctx, placeInput("session-b", bookingtest.Monday, 11, 15))
	require.NoError(t, err)
	assert.Equal(t, bookingtest.At(t, bookingtest.Monday, 12, 30), res.Hold.Blocked().End)

	// 09:00-10:00 plus its buffer runs into the 10:00 hold
	_, err = f.holds.PlaceHold(ctx, placeInput("session-c", bookingtest.Monday, 9, 0))
	assertKind(t, err, errs.ErrSlotUnavailable)
}

func TestPlaceHold_OtherProviderUnaffected(t *testing.T) {
	f := newFixture(t)
	f.place(t, "session-a", 10, 0)

	in := placeInput("session-b", bookingtest.Monday, 10, 0)
	in.ProviderID = bookingtest.OtherID
	_, err := f.holds.PlaceHold(context.Background(), in)
	assert.NoError(t, err)
}

func TestPlaceHold_RateLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := sharedmock.NewMockRateLimiter(ctrl)
		limiter.EXPECT().Allow(gomock.Any(), "hold:session-a").Return(false, nil)

		f := newFixture(t, withLimiter(limiter))
		_, err := f.holds.PlaceHold(ctx, placeInput("session-a", bookingtest.Monday, 10, 0))
		assertKind(t, err, errs.ErrRateLimited)
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := sharedmock.NewMockRateLimiter(ctrl)
		limiter.EXPECT().Allow(gomock.Any(), "hold:session-a").Return(false, errors.New("redis down"))

		f := newFixture(t, withLimiter(limiter))
		_, err := f.holds.PlaceHold(ctx, placeInput("session-a", bookingtest.Monday, 10, 0))
		assert.NoError(t, err)
	})
}

func TestPlaceHold_PublishesOnceAndIgnoresPublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := sharedmock.NewMockEventPublisher(ctrl)
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events ...shared.Event) error {
			require.Len(t, events, 1)
			assert.Equal(t, shared.EventHoldPlaced, events[0].Type)
			assert.Equal(t, bookingtest.ProviderID, events[0].ProviderID)
			return errors.New("broker unavailable")
		}).
		Times(1)

	f := newFixture(t, withPublisher(publisher))
	f.place(t, "session-a", 10, 0)
	// replay publishes nothing
	f.place(t, "session-a", 10, 0)
}

// blockedBroker never acknowledges a write until the write context ends.
type blockedBroker struct{}

func (blockedBroker) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockedBroker) Close() error { return nil }

func TestPlaceHold_UnreachableBrokerDoesNotDelayResponse(t *testing.T) {
	publisher := events.NewAsyncPublisher(events.NewKafkaPublisher(blockedBroker{}, "booking.events"), 16, 2*time.Second, discard)
	publisher.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = publisher.Stop(ctx)
	})

	f := newFixture(t, withPublisher(publisher))
	started := time.Now()
	res := f.place(t, "session-a", 10, 0)
	_, err := f.confirm.Confirm(context.Background(), confirmInput(res.Hold.ID(), "session-a"))
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 500*time.Millisecond)
}

func TestReleaseHold(t *testing.T) {
	ctx := context.Background()

	t.Run("owner frees the slot immediately", func(t *testing.T) {
		f := newFixture(t)
		res := f.place(t, "session-a", 10, 0)

		require.NoError(t, f.holds.ReleaseHold(ctx, res.Hold.ID(), "session-a"))
		f.place(t, "session-b", 10, 0)

		err := f.holds.ReleaseHold(ctx, res.Hold.ID(), "session-a")
		assertKind(t, err, errs.ErrNotFound)
	})

	t.Run("foreign session is forbidden and the slot stays held", func(t *testing.T) {
		f := newFixture(t)
		res := f.place(t, "session-a", 10, 0)

		err := f.holds.ReleaseHold(ctx, res.Hold.ID(), "session-b")
		assertKind(t, err, errs.ErrForbidden)

		_, err = f.holds.PlaceHold(ctx, placeInput("session-b", bookingtest.Monday, 10, 0))
		assertKind(t, err, errs.ErrSlotUnavailable)
	})

	t.Run("expired hold is not found", func(t *testing.T) {
		f := newFixture(t)
		res := f.place(t, "session-a", 10, 0)
		f.clock.Add(10 * time.Minute)

		err := f.holds.ReleaseHold(ctx, res.Hold.ID(), "session-a")
		assertKind(t, err, errs.ErrNotFound)
	})

	t.Run("unknown hold", func(t *testing.T) {
		f := newFixture(t)
		err := f.holds.ReleaseHold(ctx, uuid.New(), "session-a")
		assertKind(t, err, errs.ErrNotFound)
	})
}

func TestReclaimExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := sharedmock.NewMockEventPublisher(ctrl)
	var published []shared.Event
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events ...shared.Event) error {
			published = append(published, events...)
			return nil
		}).
		AnyTimes()

	f := newFixture(t, withPublisher(publisher))
	ctx := context.Background()
	f.place(t, "session-a", 9, 0)
	f.place(t, "session-b", 11, 0)

	n, err := f.holds.ReclaimExpired(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.Add(5 * time.Minute)
	f.place(t, "session-c", 13, 0)
	f.clock.Add(6 * time.Minute)

	n, err = f.holds.ReclaimExpired(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var expired int
	for _, e := range published {
		if e.Type == shared.EventHoldExpired {
			expired++
		}
	}
	assert.Equal(t, 2, expired)

	holds, _ := f.store.Counts()
	assert.Equal(t, 1, holds)
}
