package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/types"
)

// trailingMonths is how many calendar months the creation chart spans,
// current month included.
const trailingMonths = 6

type analyticsRepository interface {
	CountAssets(ctx context.Context) (int64, error)
	CountProfiles(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	TotalAssetValue(ctx context.Context) (decimal.Decimal, error)
	AssetCountsByCategory(ctx context.Context) ([]NameCount, error)
	AssetCountsByDepartment(ctx context.Context) ([]NameCount, error)
	AssetValueByDepartment(ctx context.Context) ([]NameValue, error)
	AssetCreationTimesSince(ctx context.Context, cutoff time.Time) ([]time.Time, error)
}

// Service aggregates the admin dashboard numbers.
type Service interface {
	Overview(ctx context.Context, actor types.Actor) (*OverviewDTO, error)
}

type service struct {
	repo analyticsRepository
	now  func() time.Time
}

// NewService builds the analytics service.
func NewService(repo analyticsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Overview(ctx context.Context, actor types.Actor) (*OverviewDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	out := OverviewDTO{TotalValue: decimal.Zero}
	var err error

	if out.TotalAssets, err = s.repo.CountAssets(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "count assets")
	}
	if out.TotalUsers, err = s.repo.CountProfiles(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "count users")
	}
	if out.TotalDepartments, err = s.repo.CountDepartments(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "count departments")
	}
	if out.TotalCategories, err = s.repo.CountCategories(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "count categories")
	}
	if out.TotalValue, err = s.repo.TotalAssetValue(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "sum asset value")
	}
	if out.AssetsByCategory, err = s.repo.AssetCountsByCategory(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "group assets by category")
	}
	if out.AssetsByDepartment, err = s.repo.AssetCountsByDepartment(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "group assets by department")
	}
	if out.ValueByDepartment, err = s.repo.AssetValueByDepartment(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "sum value by department")
	}

	if out.MonthlyCreations, err = s.monthlyCreations(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// monthlyCreations zero-fills the trailing window so the chart always has
// one bucket per month, oldest first.
func (s *service) monthlyCreations(ctx context.Context) ([]MonthCount, error) {
	now := s.now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	cutoff := currentMonth.AddDate(0, -(trailingMonths - 1), 0)

	times, err := s.repo.AssetCreationTimesSince(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load asset creation times")
	}

	counts := make(map[string]int64, trailingMonths)
	for _, t := range times {
		counts[t.UTC().Format("2006-01")]++
	}

	buckets := make([]MonthCount, 0, trailingMonths)
	for i := 0; i < trailingMonths; i++ {
		month := cutoff.AddDate(0, i, 0).Format("2006-01")
		buckets = append(buckets, MonthCount{Month: month, Count: counts[month]})
	}
	return buckets, nil
}
