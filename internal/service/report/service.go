// Package report assembles the clinic reports: a filtered entity list, its
// KPI block and chart-ready series, all built from one filter set.
package report

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jwalitptl/vetclinic-api/internal/cache"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
	"github.com/jwalitptl/vetclinic-api/pkg/metrics"
)

const (
	chartMonths   = 12
	evolutionDays = 30
)

type ReportService interface {
	Dashboard(ctx context.Context, p *model.Principal) (*model.Dashboard, error)
	InvalidateDashboard(ctx context.Context) error
	Clients(ctx context.Context, p *model.Principal, f model.ClientFilters) (*model.ClientReport, error)
	Animals(ctx context.Context, p *model.Principal, f model.AnimalFilters) (*model.AnimalReport, error)
	Procedures(ctx context.Context, p *model.Principal, f model.ProcedureFilters) (*model.ProcedureReport, error)
	Veterinarians(ctx context.Context, p *model.Principal, f model.VeterinarianFilters) (*model.VeterinarianReport, error)
	Consultations(ctx context.Context, p *model.Principal, f model.ConsultationFilters) (*model.ConsultationReport, error)
	Charts(ctx context.Context, p *model.Principal) (*model.ChartsReport, error)
	Export(ctx context.Context, p *model.Principal, kind Kind, q url.Values) (*Table, error)
	Location() *time.Location
}

// Deps are the collaborators of the report service. Cache and Metrics are
// optional.
type Deps struct {
	Clients       repository.ClientRepository
	Animals       repository.AnimalRepository
	Veterinarians repository.VeterinarianRepository
	Procedures    repository.ProcedureRepository
	Consultations repository.ConsultationRepository
	Reports       repository.ReportRepository
	Cache         cache.Cache
	Metrics       *metrics.Metrics
}

type Option func(*Service)

func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithDashboardTTL(ttl time.Duration) Option {
	return func(s *Service) { s.dashboardTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	deps         Deps
	loc          *time.Location
	dashboardTTL time.Duration
	now          func() time.Time
}

func NewService(deps Deps, opts ...Option) *Service {
	s := &Service{
		deps:         deps,
		loc:          time.UTC,
		dashboardTTL: 5 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

// track logs and measures one report build.
func (s *Service) track(ctx context.Context, p *model.Principal, name string, start time.Time, err error) {
	elapsed := time.Since(start)
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveReport(name, elapsed)
	}

	ev := logger.FromContext(ctx).Debug()
	if err != nil {
		ev = logger.FromContext(ctx).Error().Err(err)
	}
	if p != nil {
		ev = ev.Int64("user_id", p.UserID)
	}
	ev.Str("report", name).Dur("elapsed", elapsed).Msg("report built")
}

func (s *Service) Clients(ctx context.Context, p *model.Principal, f model.ClientFilters) (rep *model.ClientReport, err error) {
	defer func(start time.Time) { s.track(ctx, p, "clients", start, err) }(time.Now())

	clients, err := s.deps.Clients.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	since, until := yearWindow(s.clock())
	agg, err := s.deps.Reports.ClientAggregates(ctx, f, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate clients: %w", err)
	}

	return &model.ClientReport{
		Clients: clients,
		Stats: model.ClientStats{
			Total:           agg.Total,
			WithAnimals:     agg.WithAnimals,
			AnimalsPerOwner: ratio(agg.Animals, agg.Total),
			ByMonth:         calendarYear(since, agg.ByMonth),
		},
	}, nil
}

func (s *Service) Animals(ctx context.Context, p *model.Principal, f model.AnimalFilters) (rep *model.AnimalReport, err error) {
	defer func(start time.Time) { s.track(ctx, p, "pets", start, err) }(time.Now())

	animals, err := s.deps.Animals.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	since, until := yearWindow(s.clock())
	agg, err := s.deps.Reports.AnimalAggregates(ctx, f, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate animals: %w", err)
	}

	return &model.AnimalReport{
		Animals: animals,
		Stats: model.AnimalStats{
			Total:        agg.Total,
			Species:      int64(len(agg.BySpecies)),
			Males:        countOf(agg.BySex, string(model.SexMale)),
			Females:      countOf(agg.BySex, string(model.SexFemale)),
			SpeciesShare: distribution(agg.BySpecies, nil),
			ByMonth:      calendarYear(since, agg.ByMonth),
		},
	}, nil
}

func (s *Service) Procedures(ctx context.Context, p *model.Principal, f model.ProcedureFilters) (rep *model.ProcedureReport, err error) {
	defer func(start time.Time) { s.track(ctx, p, "procedures", start, err) }(time.Now())

	procedures, err := s.deps.Procedures.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	agg, err := s.deps.Reports.ProcedureAggregates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate procedures: %w", err)
	}

	return &model.ProcedureReport{
		Procedures: procedures,
		Stats: model.ProcedureStats{
			Total:        agg.Total,
			Active:       agg.Active,
			AveragePrice: money(agg.AveragePrice),
			MostUsed:     topEntry(agg.MostUsed),
			Revenue:      money(agg.Revenue),
		},
	}, nil
}

func (s *Service) Veterinarians(ctx context.Context, p *model.Principal, f model.VeterinarianFilters) (rep *model.VeterinarianReport, err error) {
	defer func(start time.Time) { s.track(ctx, p, "veterinarians", start, err) }(time.Now())

	vets, err := s.deps.Veterinarians.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list veterinarians: %w", err)
	}
	agg, err := s.deps.Reports.VeterinarianAggregates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate veterinarians: %w", err)
	}

	specs := make([]model.SpecializationCount, 0, len(agg.BySpecialization))
	for _, d := range distribution(agg.BySpecialization, nil) {
		specs = append(specs, model.SpecializationCount{Specialization: d.Name, Total: d.Value})
	}

	return &model.VeterinarianReport{
		Veterinarians: vets,
		Stats: model.VeterinarianStats{
			Total:            agg.Total,
			Specializations:  specs,
			MostActive:       topEntry(agg.MostActive),
			ConsultationsAvg: ratio(agg.Consultations, agg.Total),
		},
	}, nil
}

func (s *Service) Consultations(ctx context.Context, p *model.Principal, f model.ConsultationFilters) (rep *model.ConsultationReport, err error) {
	defer func(start time.Time) { s.track(ctx, p, "consultations", start, err) }(time.Now())

	consultations, err := s.deps.Consultations.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	since, until := dayWindow(s.clock(), evolutionDays)
	agg, err := s.deps.Reports.ConsultationAggregates(ctx, f, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate consultations: %w", err)
	}

	ticket := 0.0
	if agg.Billable > 0 {
		ticket = money(agg.Revenue.Div(decimal.NewFromInt(agg.Billable)))
	}

	byVet := make([]model.NameTotal, len(agg.ByVeterinarian))
	for i, e := range agg.ByVeterinarian {
		byVet[i] = model.NameTotal{Name: e.Name, Total: e.Total}
	}

	return &model.ConsultationReport{
		Consultations: consultations,
		Stats: model.ConsultationStats{
			Total:          agg.Total,
			Completed:      countOf(agg.ByStatus, string(model.ConsultationStatusCompleted)),
			Revenue:        money(agg.Revenue),
			AverageTicket:  ticket,
			StatusShare:    distribution(agg.ByStatus, statusLabel),
			ByVeterinarian: byVet,
			DailyEvolution: dailySeries(since, evolutionDays, agg.DailyCounts, agg.DailyRevenue),
		},
	}, nil
}

func (s *Service) Charts(ctx context.Context, p *model.Principal) (rep *model.ChartsReport, err error) {
	defer func(start time.Time) { s.track(ctx, p, "charts", start, err) }(time.Now())

	since, until := monthWindow(s.clock(), chartMonths)
	agg, err := s.deps.Reports.ChartAggregates(ctx, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate charts: %w", err)
	}

	return &model.ChartsReport{
		ConsultationsByMonth: trailingMonthCounts(since, chartMonths, agg.ConsultationsByMonth),
		RevenueByMonth:       trailingMonthAmounts(since, chartMonths, agg.RevenueByMonth),
		AnimalsBySpecies:     distribution(agg.AnimalsBySpecies, nil),
	}, nil
}

func statusLabel(s string) string {
	return model.ConsultationStatus(s).Label()
}
