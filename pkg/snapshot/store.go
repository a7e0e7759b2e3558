package snapshot

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
)

var (
	ErrDataUnavailable = errors.New("no snapshot pair available")
	ErrLengthMismatch  = fmt.Errorf("%w: previous and current snapshots differ in length", ErrDataUnavailable)
)

// Pair. a complete, immutable (previous, current) snapshot. Version increases with every publication.
type Pair struct {
	Previous  []da.GeoPoint
	Current   []da.GeoPoint
	Version   uint64
	FetchedAt time.Time
}

func (p *Pair) Len() int {
	return len(p.Current)
}

// Store. holds the latest published pair. Readers get either a complete pair or
// ErrDataUnavailable, never a half-updated one.
type Store struct {
	latest  atomic.Pointer[Pair]
	version atomic.Uint64

	mu          sync.Mutex
	subscribers map[int]chan *Pair
	nextSubID   int
}

func NewStore() *Store {
	return &Store{subscribers: make(map[int]chan *Pair)}
}

// Publish. swaps in a new pair. Empty or mismatched pairs are rejected and the previous pair stays.
func (s *Store) Publish(previous, current []da.GeoPoint, fetchedAt time.Time) (*Pair, error) {
	if len(previous) != len(current) {
		return nil, fmt.Errorf("%w: previous=%d current=%d", ErrLengthMismatch, len(previous), len(current))
	}
	if len(current) == 0 {
		return nil, fmt.Errorf("%w: snapshot has no valid records", ErrDataUnavailable)
	}

	pair := &Pair{
		Previous:  previous,
		Current:   current,
		Version:   s.version.Add(1),
		FetchedAt: fetchedAt,
	}
	s.latest.Store(pair)
	s.notify(pair)
	return pair, nil
}

func (s *Store) Latest() (*Pair, error) {
	pair := s.latest.Load()
	if pair == nil {
		return nil, ErrDataUnavailable
	}
	return pair, nil
}

// Subscribe. receives every pair published after the call. Slow subscribers miss pairs rather
// than block publication. cancel must be called to release the channel.
func (s *Store) Subscribe(buffer int) (<-chan *Pair, func()) {
	ch := make(chan *Pair, buffer)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *Store) notify(pair *Pair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- pair:
		default:
		}
	}
}
