package catalog

import (
	"context"
	"time"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultSweepInterval  = 30 * time.Minute
	DefaultReservationTTL = 24 * time.Hour
)

// ReleaseExpired flips records held in "reserved" longer than ttl back to
// "available" and clears the hold time. Idempotent: a second pass with no
// intervening change releases nothing.
func (s *Service) ReleaseExpired(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	released := 0
	for i := range s.books {
		b := &s.books[i]
		if b.Availability != model.AvailabilityReserved || b.ReservedAt == nil {
			continue
		}
		if b.ReservedAt.After(cutoff) {
			continue
		}
		b.Availability = model.AvailabilityAvailable
		b.ReservedAt = nil
		released++
	}
	return released
}

// RunSweeper releases stale reservations once at start and then on every
// interval tick, until ctx is canceled.
func (s *Service) RunSweeper(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}

	s.sweep(time.Now(), ttl)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(now, ttl)
		}
	}
}

func (s *Service) sweep(now time.Time, ttl time.Duration) {
	if released := s.ReleaseExpired(now, ttl); released > 0 {
		s.log.Info("released expired reservations", zap.Int("count", released))
	}
}
