package snapshot

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const DefaultRefreshInterval = 60 * time.Minute

// Refresher. periodically pulls a pair from source into store. A failed refresh keeps the
// last good pair published.
type Refresher struct {
	source   Source
	store    *Store
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewRefresher(source Source, store *Store, interval time.Duration, log *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		source:   source,
		store:    store,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

func (r *Refresher) Refresh(ctx context.Context) (*Pair, error) {
	rawPrev, rawCurr, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	prev, curr, err := Clean(rawPrev, rawCurr, r.log)
	if err != nil {
		return nil, err
	}
	pair, err := r.store.Publish(prev, curr, r.now())
	if err != nil {
		return nil, err
	}
	r.log.Info("snapshot published", zap.Uint64("version", pair.Version), zap.Int("points", pair.Len()))
	return pair, nil
}

// Run. refreshes once immediately and then every interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	r.refreshAndLog(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.refreshAndLog(ctx)
		}
	}
}

func (r *Refresher) refreshAndLog(ctx context.Context) {
	if _, err := r.Refresh(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		_, latestErr := r.store.Latest()
		r.log.Error("snapshot refresh failed", zap.Error(err), zap.Bool("serving_previous", latestErr == nil))
	}
}
