package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/vetclinic-api/internal/cache"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
)

// Dashboard returns the clinic-wide summary, served from cache when a fresh
// copy exists. Cache failures fall back to computing the summary.
func (s *Service) Dashboard(ctx context.Context, p *model.Principal) (*model.Dashboard, error) {
	log := logger.FromContext(ctx)

	if s.deps.Cache != nil {
		var cached model.Dashboard
		found, err := s.deps.Cache.Get(ctx, cache.DashboardKey, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard cache read failed")
		}
		if found {
			if s.deps.Metrics != nil {
				s.deps.Metrics.CacheHit(cache.DashboardKey)
			}
			return &cached, nil
		}
		if s.deps.Metrics != nil {
			s.deps.Metrics.CacheMiss(cache.DashboardKey)
		}
	}

	d, err := s.buildDashboard(ctx, p)
	if err != nil {
		return nil, err
	}

	if s.deps.Cache != nil {
		if err := s.deps.Cache.Set(ctx, cache.DashboardKey, d, s.dashboardTTL); err != nil {
			log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	return d, nil
}

func (s *Service) buildDashboard(ctx context.Context, p *model.Principal) (d *model.Dashboard, err error) {
	defer func(start time.Time) { s.track(ctx, p, "dashboard", start, err) }(time.Now())

	monthStart := startOfMonth(s.clock())
	agg, err := s.deps.Reports.DashboardAggregates(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard: %w", err)
	}

	return &model.Dashboard{
		TotalClients:           agg.Clients,
		TotalAnimals:           agg.Animals,
		TotalVeterinarians:     agg.Veterinarians,
		TotalConsultations:     agg.Consultations,
		TotalProcedures:        agg.Procedures,
		ConsultationsThisMonth: agg.ConsultationsThisMonth,
		RevenueThisMonth:       money(agg.RevenueThisMonth),
		PendingConsultations:   agg.Pending,
	}, nil
}

// InvalidateDashboard drops the cached summary so the next read recomputes it.
func (s *Service) InvalidateDashboard(ctx context.Context) error {
	if s.deps.Cache == nil {
		return nil
	}
	return s.deps.Cache.Delete(ctx, cache.DashboardKey)
}
