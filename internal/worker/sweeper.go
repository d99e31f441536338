package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slot-booker/internal/usecase/commands"
)

type Reclaimer interface {
	ReclaimExpired(ctx context.Context, limit int) (int, error)
}

var _ Reclaimer = (commands.HoldCommands)(nil)

// HoldSweeper deletes expired holds in the background. Reads already ignore
// expired holds, so the sweeper only reclaims storage and emits
// hold.expired events.
type HoldSweeper struct {
	reclaimer Reclaimer
	interval  time.Duration
	batch     int
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHoldSweeper(reclaimer Reclaimer, interval time.Duration, batch int, logger *slog.Logger) *HoldSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if batch <= 0 {
		batch = 100
	}
	return &HoldSweeper{
		reclaimer: reclaimer,
		interval:  interval,
		batch:     batch,
		logger:    logger,
	}
}

func (s *HoldSweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run(ctx)
	}()
}

// Stop cancels the loop and waits for an in-flight sweep to return.
func (s *HoldSweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *HoldSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce drains expired holds batch by batch until a short batch shows
// nothing is left.
func (s *HoldSweeper) SweepOnce(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := s.reclaimer.ReclaimExpired(ctx, s.batch)
		if err != nil {
			s.logger.ErrorContext(ctx, "hold sweep failed", "error", err.Error(), "reclaimed", total)
			return total
		}
		total += n
		if n < s.batch {
			break
		}
	}
	if total > 0 {
		s.logger.InfoContext(ctx, "expired holds reclaimed", "count", total)
	}
	return total
}
