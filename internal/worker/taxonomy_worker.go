package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/utils"
)

// TaxonomyWorker periodically refreshes the cached category and
// subcategory lists. The marketplace scopes taxonomy reads to a vendor
// token, so the worker borrows the most recent live session; with no
// vendor logged in there is nothing to refresh and the tick is skipped.
type TaxonomyWorker struct {
	taxonomy *service.TaxonomyService
	sessions *session.Store
	interval time.Duration
}

// NewTaxonomyWorker constructs a TaxonomyWorker.
func NewTaxonomyWorker(taxonomy *service.TaxonomyService, sessions *session.Store, interval time.Duration) *TaxonomyWorker {
	return &TaxonomyWorker{
		taxonomy: taxonomy,
		sessions: sessions,
		interval: interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *TaxonomyWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting taxonomy worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Taxonomy worker stopped")
			return
		}
	}
}

func (w *TaxonomyWorker) run(ctx context.Context) {
	sess, err := w.sessions.Latest()
	if err != nil {
		if errors.Is(err, utils.ErrSessionNotFound) {
			log.Debug().Msg("No live session, skipping taxonomy refresh")
			return
		}
		log.Error().Err(err).Msg("Failed to load session for taxonomy refresh")
		return
	}

	start := time.Now()
	if err := w.taxonomy.Refresh(ctx, sess.Token); err != nil {
		log.Error().Err(err).Msg("Failed to refresh taxonomy")
		return
	}

	log.Info().Dur("duration", time.Since(start)).Msg("Taxonomy refresh completed")
}
