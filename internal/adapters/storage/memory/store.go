package memory

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waelttf/UniqueRequest/internal/domain"
)

// Store is the in-memory exchange store backing the traffic source.
// Exchanges are kept in ingest order; at capacity the oldest is dropped
// from the head. Process-local only, nothing survives a restart.
type Store struct {
	mu        sync.RWMutex
	exchanges []domain.Exchange

	maxExchanges int
}

func NewStore(maxExchanges int) *Store {
	return &Store{
		exchanges:    make([]domain.Exchange, 0, 256),
		maxExchanges: maxExchanges,
	}
}

// AppendExchange stores one captured exchange, filling in an id, capture
// time, host and path when the host left them blank.
func (s *Store) AppendExchange(ctx context.Context, ex domain.Exchange) error {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.CapturedAt.IsZero() {
		ex.CapturedAt = time.Now()
	}
	if ex.Host == "" || ex.Path == "" {
		if u, err := url.Parse(ex.URL); err == nil {
			if ex.Host == "" {
				ex.Host = u.Hostname()
			}
			if ex.Path == "" {
				ex.Path = u.RequestURI()
			}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxExchanges > 0 && len(s.exchanges) >= s.maxExchanges {
		// drop-from-head policy
		s.exchanges = s.exchanges[1:]
	}
	s.exchanges = append(s.exchanges, ex)
	return nil
}

// ListExchanges returns a snapshot in ingest order.
func (s *Store) ListExchanges(ctx context.Context) ([]domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out, nil
}

func (s *Store) CountExchanges(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exchanges), nil
}

func (s *Store) ClearExchanges(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = s.exchanges[:0]
	return nil
}
