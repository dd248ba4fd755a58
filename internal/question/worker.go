package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type categoryRefresher interface {
	RefreshCategories(ctx context.Context) ([]Category, error)
}

// CategoryWarmer reloads the category cache on an interval so reads keep
// hitting Redis after the TTL lapses.
type CategoryWarmer struct {
	service  categoryRefresher
	logger   zerolog.Logger
	interval time.Duration
	timeout  time.Duration
}

func NewCategoryWarmer(service categoryRefresher, logger zerolog.Logger, interval time.Duration) *CategoryWarmer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CategoryWarmer{
		service:  service,
		logger:   logger.With().Str("component", "category_warmer").Logger(),
		interval: interval,
		timeout:  4 * time.Second,
	}
}

// Run warms once immediately, then on every tick until ctx is cancelled.
func (w *CategoryWarmer) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.warm(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("category warmer stopping")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CategoryWarmer) warm(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	categories, err := w.service.RefreshCategories(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category warm failed")
		return
	}
	w.logger.Debug().Int("categories", len(categories)).Msg("category cache warmed")
}
