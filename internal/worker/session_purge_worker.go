package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lalajistore/vendor-gateway/internal/session"
)

// SessionPurgeWorker periodically deletes expired sessions from the local
// store. Expired rows are also removed lazily on read; this sweep covers
// sessions that are never touched again.
type SessionPurgeWorker struct {
	sessions *session.Store
	interval time.Duration
}

// NewSessionPurgeWorker constructs a SessionPurgeWorker.
func NewSessionPurgeWorker(sessions *session.Store, interval time.Duration) *SessionPurgeWorker {
	return &SessionPurgeWorker{
		sessions: sessions,
		interval: interval,
	}
}

// Start begins the periodic purge loop and listens for context cancellation.
func (w *SessionPurgeWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting session purge worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Session purge worker stopped")
			return
		}
	}
}

func (w *SessionPurgeWorker) run() {
	n, err := w.sessions.PurgeExpired()
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge expired sessions")
		return
	}
	if n > 0 {
		log.Info().Int64("purged", n).Msg("Expired sessions purged")
	}
}
