package service

import (
	"context"
	"time"

	"github.com/cardvault/cardvault-server/internal/domain"
	"github.com/cardvault/cardvault-server/internal/dto"
	apperrors "github.com/cardvault/cardvault-server/internal/errors"
	"github.com/cardvault/cardvault-server/internal/logger"
	"github.com/cardvault/cardvault-server/internal/store"
)

// SeriesService implements the series use cases over a SeriesStore.
type SeriesService struct {
	store  SeriesStore
	rules  RuleSet
	logger *logger.Logger
	now    func() time.Time
}

// Option customizes a SeriesService.
type Option func(*SeriesService)

// WithClock overrides the time source. Tests use this to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SeriesService) { s.now = now }
}

// WithRules replaces the default rule set.
func WithRules(rules RuleSet) Option {
	return func(s *SeriesService) { s.rules = rules }
}

// NewSeriesService creates a series service with the default rules.
func NewSeriesService(st SeriesStore, log *logger.Logger, opts ...Option) *SeriesService {
	s := &SeriesService{
		store:  st,
		rules:  DefaultRules(st),
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and persists a new series. The store assigns the
// identifier; the returned series carries it.
func (s *SeriesService) Create(ctx context.Context, cmd dto.CreateSeriesCommand) (domain.Series, error) {
	candidate := dto.CreateCommandToDomain(cmd, s.now().UTC())

	if err := s.rules.evaluate(ctx, OpCreate, &candidate); err != nil {
		return domain.Series{}, err
	}

	rec, err := s.store.Save(ctx, dto.DomainToRecord(candidate))
	if err != nil {
		return domain.Series{}, err
	}

	s.logger.Info("series created", "series_id", rec.ID, "code", rec.Code)
	return dto.RecordToDomain(rec), nil
}

// Update validates and persists a full replacement of the series with the
// given identifier. The creation timestamp is preserved by the store.
func (s *SeriesService) Update(ctx context.Context, seriesID string, cmd dto.UpdateSeriesCommand) (domain.Series, error) {
	candidate := dto.UpdateCommandToDomain(cmd, seriesID, s.now().UTC())

	if err := s.rules.evaluate(ctx, OpUpdate, &candidate); err != nil {
		return domain.Series{}, err
	}

	rec, err := s.store.Save(ctx, dto.DomainToRecord(candidate))
	if err != nil {
		return domain.Series{}, err
	}

	s.logger.Info("series updated", "series_id", rec.ID, "code", rec.Code)
	return dto.RecordToDomain(rec), nil
}

// Delete validates and removes the series with the given identifier.
func (s *SeriesService) Delete(ctx context.Context, seriesID string) error {
	candidate := domain.Series{ID: seriesID}

	if err := s.rules.evaluate(ctx, OpDelete, &candidate); err != nil {
		return err
	}

	if err := s.store.DeleteByID(ctx, seriesID); err != nil {
		return err
	}

	s.logger.Info("series deleted", "series_id", seriesID)
	return nil
}

// GetByID returns the series with the given identifier.
func (s *SeriesService) GetByID(ctx context.Context, seriesID string) (domain.Series, error) {
	rec, err := s.store.FindByID(ctx, seriesID)
	if err != nil {
		return domain.Series{}, err
	}
	return dto.RecordToDomain(*rec), nil
}

// GetByCode returns the series with the given code.
func (s *SeriesService) GetByCode(ctx context.Context, code string) (domain.Series, error) {
	rec, err := s.store.FindByCode(ctx, code)
	if err != nil {
		return domain.Series{}, err
	}
	return dto.RecordToDomain(*rec), nil
}

// List returns one zero-based page of series.
func (s *SeriesService) List(ctx context.Context, page, pageSize int) (*store.Page[domain.Series], error) {
	if page < 0 {
		return nil, apperrors.Validation("page must not be negative")
	}
	recs, err := s.store.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.PageToDomain(recs), nil
}
