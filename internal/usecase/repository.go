package usecase

import (
	"context"

	"github.com/waelttf/UniqueRequest/internal/domain"
)

// TrafficSource supplies captured exchanges in original capture order.
// An analysis run reads it exactly once, start to end.
type TrafficSource interface {
	ListExchanges(ctx context.Context) ([]domain.Exchange, error)
}

// ExchangeRepository is the full store contract: the host populates it over
// the ingest API and the analysis pipelines consume it as a TrafficSource.
type ExchangeRepository interface {
	TrafficSource
	AppendExchange(ctx context.Context, ex domain.Exchange) error
	CountExchanges(ctx context.Context) (int, error)
	ClearExchanges(ctx context.Context) error
}
