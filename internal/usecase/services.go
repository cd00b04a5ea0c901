package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/waelttf/UniqueRequest/internal/analysis"
	"github.com/waelttf/UniqueRequest/internal/domain"
)

var (
	// ErrEntryNotFound reports a sequence id outside the current result set.
	// Caller error, unlike the silent skips during a run.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrUnknownMode reports a mode string that names no pipeline.
	ErrUnknownMode = errors.New("unknown analysis mode")
)

// AnalyzerService owns the two per-mode registries and the exchange store.
// The registries are independent: re-running one mode never disturbs the
// other's result set.
type AnalyzerService struct {
	exchanges ExchangeRepository
	normal    *analysis.Registry[domain.NormalRecord]
	graphql   *analysis.Registry[domain.GraphQLRecord]
}

func NewAnalyzerService(exchanges ExchangeRepository) *AnalyzerService {
	return &AnalyzerService{
		exchanges: exchanges,
		normal:    analysis.NewRegistry[domain.NormalRecord](),
		graphql:   analysis.NewRegistry[domain.GraphQLRecord](),
	}
}

// Ingest uppercases the method and stores one exchange.
func (s *AnalyzerService) Ingest(ctx context.Context, ex domain.Exchange) error {
	ex.Method = strings.ToUpper(ex.Method)
	return s.exchanges.AppendExchange(ctx, ex)
}

func (s *AnalyzerService) Exchanges(ctx context.Context) ([]domain.Exchange, error) {
	return s.exchanges.ListExchanges(ctx)
}

func (s *AnalyzerService) CountExchanges(ctx context.Context) (int, error) {
	return s.exchanges.CountExchanges(ctx)
}

func (s *AnalyzerService) ClearExchanges(ctx context.Context) error {
	return s.exchanges.ClearExchanges(ctx)
}

// RunNormal rebuilds the normal-mode result set from one full pass over the
// traffic source with the given filter toggles.
func (s *AnalyzerService) RunNormal(ctx context.Context, filters analysis.NormalFilters) (analysis.RunStats, error) {
	exs, err := s.exchanges.ListExchanges(ctx)
	if err != nil {
		return analysis.RunStats{}, err
	}
	return s.normal.Run(exs, analysis.NormalRunFunc(filters)), nil
}

// RunGraphQL rebuilds the graphql-mode result set.
func (s *AnalyzerService) RunGraphQL(ctx context.Context) (analysis.RunStats, error) {
	exs, err := s.exchanges.ListExchanges(ctx)
	if err != nil {
		return analysis.RunStats{}, err
	}
	return s.graphql.Run(exs, analysis.GraphQLRunFunc()), nil
}

// NormalResults lists retained normal records, optionally filtered by a
// case-insensitive substring match on the normalized path.
func (s *AnalyzerService) NormalResults(pattern string) []domain.NormalRecord {
	entries := s.normal.Search(pattern, func(r domain.NormalRecord) string { return r.NormalizedPath })
	out := make([]domain.NormalRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record)
	}
	return out
}

// GraphQLResults lists retained graphql records, optionally filtered by a
// case-insensitive substring match on the operation name.
func (s *AnalyzerService) GraphQLResults(pattern string) []domain.GraphQLRecord {
	entries := s.graphql.Search(pattern, func(r domain.GraphQLRecord) string { return r.Operation })
	out := make([]domain.GraphQLRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record)
	}
	return out
}

// GetExchange fetches the retained exchange behind one result entry.
func (s *AnalyzerService) GetExchange(mode domain.Mode, seq int) (domain.Exchange, error) {
	ex, ok, err := s.entryExchange(mode, seq)
	if err != nil {
		return domain.Exchange{}, err
	}
	if !ok {
		return domain.Exchange{}, ErrEntryNotFound
	}
	return ex, nil
}

// ExportForReplay prepares the resend tuple for one retained exchange.
func (s *AnalyzerService) ExportForReplay(mode domain.Mode, seq int) (domain.ReplayTarget, error) {
	ex, err := s.GetExchange(mode, seq)
	if err != nil {
		return domain.ReplayTarget{}, err
	}
	return domain.ReplayTarget{
		Host:       ex.Service.Host,
		Port:       ex.Service.Port,
		UseTLS:     ex.Service.Scheme == "https",
		RawRequest: ex.RawRequest,
	}, nil
}

// RemoveEntry deletes one result entry. Other entries keep their ids.
func (s *AnalyzerService) RemoveEntry(mode domain.Mode, seq int) error {
	var removed bool
	switch mode {
	case domain.ModeNormal:
		removed = s.normal.RemoveBySeq(seq)
	case domain.ModeGraphQL:
		removed = s.graphql.RemoveBySeq(seq)
	default:
		return ErrUnknownMode
	}
	if !removed {
		return ErrEntryNotFound
	}
	return nil
}

// ClearAll resets one mode's result set to empty.
func (s *AnalyzerService) ClearAll(mode domain.Mode) error {
	switch mode {
	case domain.ModeNormal:
		s.normal.Clear()
	case domain.ModeGraphQL:
		s.graphql.Clear()
	default:
		return ErrUnknownMode
	}
	return nil
}

// ResultCount returns the current visible size of one mode's result set.
func (s *AnalyzerService) ResultCount(mode domain.Mode) (int, error) {
	switch mode {
	case domain.ModeNormal:
		return s.normal.Len(), nil
	case domain.ModeGraphQL:
		return s.graphql.Len(), nil
	default:
		return 0, ErrUnknownMode
	}
}

func (s *AnalyzerService) entryExchange(mode domain.Mode, seq int) (domain.Exchange, bool, error) {
	switch mode {
	case domain.ModeNormal:
		e, ok := s.normal.EntryBySeq(seq)
		return e.Exchange, ok, nil
	case domain.ModeGraphQL:
		e, ok := s.graphql.EntryBySeq(seq)
		return e.Exchange, ok, nil
	default:
		return domain.Exchange{}, false, ErrUnknownMode
	}
}
