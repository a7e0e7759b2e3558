package snapshot

import (
	"fmt"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
	"go.uber.org/zap"
)

/*
Clean. validates a positionally aligned (previous, current) pair. The sequences must have the
same length. Index i is dropped from both sequences when either record has a non-finite field,
so the surviving records stay aligned after re-indexing.
*/
func Clean(previous, current []RawRecord, log *zap.Logger) ([]da.GeoPoint, []da.GeoPoint, error) {
	if len(previous) != len(current) {
		return nil, nil, fmt.Errorf("%w: previous=%d current=%d", ErrLengthMismatch, len(previous), len(current))
	}

	prev := make([]da.GeoPoint, 0, len(previous))
	curr := make([]da.GeoPoint, 0, len(current))
	dropped := 0
	for i := range previous {
		p, c := previous[i].GeoPoint(), current[i].GeoPoint()
		if !p.IsValid() || !c.IsValid() {
			log.Warn("dropping invalid record pair", zap.Int("index", i),
				zap.Bool("previous_valid", p.IsValid()), zap.Bool("current_valid", c.IsValid()))
			dropped++
			continue
		}
		prev = append(prev, p)
		curr = append(curr, c)
	}

	if dropped > 0 {
		log.Info("snapshot cleaned", zap.Int("kept", len(prev)), zap.Int("dropped", dropped))
	}
	return prev, curr, nil
}
