package scheduler

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vcostin/pic-gallery-sub004/internal/application"
)

// SessionSweeper periodically evicts gallery editing sessions that have
// been idle past their TTL, so abandoned editors do not pile up in
// memory.
type SessionSweeper struct {
	sessions *application.SessionManager
	interval time.Duration
	ticker   *time.Ticker
	done     chan struct{}
}

func NewSessionSweeper(sessions *application.SessionManager, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in the background.
func (s *SessionSweeper) Start() {
	log.Info().Dur("interval", s.interval).Msg("session sweeper started")

	s.ticker = time.NewTicker(s.interval)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.sweep()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop halts the sweep loop.
func (s *SessionSweeper) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)
	log.Info().Msg("session sweeper stopped")
}

func (s *SessionSweeper) sweep() {
	evicted := s.sessions.EvictExpired()
	if evicted > 0 {
		log.Info().Int("evicted", evicted).Int("remaining", s.sessions.Size()).Msg("expired editing sessions evicted")
	}
}
