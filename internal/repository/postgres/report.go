package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
)

const (
	notCancelled = "c.status <> 'cancelada'"
	lineTotal    = "COALESCE(SUM(cp.quantidade * cp.preco_unitario), 0)"
)

type reportRepository struct {
	BaseRepository
}

func NewReportRepository(base BaseRepository) repository.ReportRepository {
	return &reportRepository{base}
}

func (r *reportRepository) count(ctx context.Context, from string, b *filter.Builder) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*)"+from+b.Where(), b.Args()...); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

func (r *reportRepository) amount(ctx context.Context, expr, from string, b *filter.Builder) (decimal.Decimal, error) {
	var d decimal.Decimal
	if err := r.db.GetContext(ctx, &d, "SELECT "+expr+from+b.Where(), b.Args()...); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum: %w", err)
	}
	return d, nil
}

// groupCount counts rows per label, largest group first and ties by label.
func (r *reportRepository) groupCount(ctx context.Context, label, from string, b *filter.Builder) ([]model.LabelCount, error) {
	query := "SELECT " + label + " AS label, COUNT(*) AS total" + from + b.Where() +
		" GROUP BY 1 ORDER BY total DESC, label"
	rows := []model.LabelCount{}
	if err := r.db.SelectContext(ctx, &rows, query, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to group by %s: %w", label, err)
	}
	return rows, nil
}

// periodCount counts rows per date_trunc(unit, col) bucket in [since, until).
func (r *reportRepository) periodCount(ctx context.Context, unit, col, from string, b *filter.Builder, since, until time.Time) ([]model.PeriodCount, error) {
	b = b.Clone().Cmp(col, ">=", since).Cmp(col, "<", until)
	query := fmt.Sprintf("SELECT date_trunc('%s', %s) AS period, COUNT(*) AS total", unit, col) +
		from + b.Where() + " GROUP BY 1 ORDER BY 1"
	rows := []model.PeriodCount{}
	if err := r.db.SelectContext(ctx, &rows, query, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", unit, err)
	}
	return rows, nil
}

// periodRevenue sums line totals of non-cancelled consultations per
// date_trunc(unit, c.data_consulta) bucket in [since, until).
func (r *reportRepository) periodRevenue(ctx context.Context, unit, from string, b *filter.Builder, since, until time.Time) ([]model.PeriodAmount, error) {
	b = b.Clone().Raw(notCancelled).
		Cmp("c.data_consulta", ">=", since).
		Cmp("c.data_consulta", "<", until)
	query := fmt.Sprintf("SELECT date_trunc('%s', c.data_consulta) AS period, %s AS total", unit, lineTotal) +
		from + b.Where() + " GROUP BY 1 ORDER BY 1"
	rows := []model.PeriodAmount{}
	if err := r.db.SelectContext(ctx, &rows, query, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to sum revenue by %s: %w", unit, err)
	}
	return rows, nil
}

// top returns the first row of a ranking query, or nil when it is empty.
func (r *reportRepository) top(ctx context.Context, query string, b *filter.Builder) (*model.TopEntry, error) {
	var entry model.TopEntry
	err := r.db.GetContext(ctx, &entry, query, b.Args()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rank: %w", err)
	}
	return &entry, nil
}

func (r *reportRepository) ClientAggregates(ctx context.Context, filters model.ClientFilters, since, until time.Time) (*model.ClientAggregates, error) {
	b := filter.ClientPredicates(filters)
	from := " FROM clientes cl"
	agg := &model.ClientAggregates{}
	var err error

	if agg.Total, err = r.count(ctx, from, b); err != nil {
		return nil, err
	}
	owners := b.Clone().Raw("EXISTS (SELECT 1 FROM animals an WHERE an.cliente_id = cl.id)")
	if agg.WithAnimals, err = r.count(ctx, from, owners); err != nil {
		return nil, err
	}
	if agg.Animals, err = r.count(ctx, " FROM animals an JOIN clientes cl ON cl.id = an.cliente_id", b); err != nil {
		return nil, err
	}
	if agg.ByMonth, err = r.periodCount(ctx, "month", "cl.created_at", from, b, since, until); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *reportRepository) AnimalAggregates(ctx context.Context, filters model.AnimalFilters, since, until time.Time) (*model.AnimalAggregates, error) {
	b := filter.AnimalPredicates(filters)
	from := " FROM animals a"
	agg := &model.AnimalAggregates{}
	var err error

	if agg.Total, err = r.count(ctx, from, b); err != nil {
		return nil, err
	}
	if agg.BySex, err = r.groupCount(ctx, "a.sexo", from, b); err != nil {
		return nil, err
	}
	if agg.BySpecies, err = r.groupCount(ctx, "a.especie", from, b); err != nil {
		return nil, err
	}
	if agg.ByMonth, err = r.periodCount(ctx, "month", "a.created_at", from, b, since, until); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *reportRepository) ProcedureAggregates(ctx context.Context, filters model.ProcedureFilters) (*model.ProcedureAggregates, error) {
	b := filter.ProcedurePredicates(filters)
	from := " FROM procedures p"
	agg := &model.ProcedureAggregates{}
	var err error

	if agg.Total, err = r.count(ctx, from, b); err != nil {
		return nil, err
	}
	if agg.Active, err = r.count(ctx, from, b.Clone().Raw("p.ativo")); err != nil {
		return nil, err
	}
	if agg.AveragePrice, err = r.amount(ctx, "COALESCE(AVG(p.preco), 0)", from, b); err != nil {
		return nil, err
	}

	mostUsed := `SELECT p.id, p.nome, SUM(cp.quantidade) AS total
		FROM procedures p JOIN consulta_procedure cp ON cp.procedure_id = p.id` + b.Where() + `
		GROUP BY p.id, p.nome ORDER BY total DESC, p.id LIMIT 1`
	if agg.MostUsed, err = r.top(ctx, mostUsed, b); err != nil {
		return nil, err
	}

	revenueFrom := ` FROM consulta_procedure cp
		JOIN procedures p ON p.id = cp.procedure_id
		JOIN consultas c ON c.id = cp.consulta_id`
	if agg.Revenue, err = r.amount(ctx, lineTotal, revenueFrom, b.Clone().Raw(notCancelled)); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *reportRepository) VeterinarianAggregates(ctx context.Context, filters model.VeterinarianFilters) (*model.VeterinarianAggregates, error) {
	b := filter.VeterinarianPredicates(filters)
	from := " FROM veterinarios v"
	agg := &model.VeterinarianAggregates{}
	var err error

	if agg.Total, err = r.count(ctx, from, b); err != nil {
		return nil, err
	}
	if agg.BySpecialization, err = r.groupCount(ctx, "COALESCE(NULLIF(v.especialidade, ''), 'Não informada')", from, b); err != nil {
		return nil, err
	}

	mostActive := `SELECT v.id, v.nome, COUNT(*) AS total
		FROM veterinarios v JOIN consultas c ON c.veterinario_id = v.id` + b.Where() + `
		GROUP BY v.id, v.nome ORDER BY total DESC, v.id LIMIT 1`
	if agg.MostActive, err = r.top(ctx, mostActive, b); err != nil {
		return nil, err
	}
	if agg.Consultations, err = r.count(ctx, " FROM consultas c JOIN veterinarios v ON v.id = c.veterinario_id", b); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *reportRepository) ConsultationAggregates(ctx context.Context, filters model.ConsultationFilters, since, until time.Time) (*model.ConsultationAggregates, error) {
	b := filter.ConsultationPredicates(filters)
	revenueFrom := " FROM consulta_procedure cp JOIN consultas c ON c.id = cp.consulta_id" +
		" JOIN animals a ON a.id = c.animal_id JOIN veterinarios v ON v.id = c.veterinario_id"
	agg := &model.ConsultationAggregates{}
	var err error

	if agg.Total, err = r.count(ctx, consultationFrom, b); err != nil {
		return nil, err
	}
	if agg.ByStatus, err = r.groupCount(ctx, "c.status", consultationFrom, b); err != nil {
		return nil, err
	}
	if agg.Revenue, err = r.amount(ctx, lineTotal, revenueFrom, b.Clone().Raw(notCancelled)); err != nil {
		return nil, err
	}
	if agg.Billable, err = r.count(ctx, consultationFrom, b.Clone().Raw(notCancelled)); err != nil {
		return nil, err
	}

	byVet := `SELECT v.id, v.nome, COUNT(*) AS total` + consultationFrom + b.Where() +
		` GROUP BY v.id, v.nome ORDER BY total DESC, v.id`
	agg.ByVeterinarian = []model.TopEntry{}
	if err := r.db.SelectContext(ctx, &agg.ByVeterinarian, byVet, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to count consultations by veterinarian: %w", err)
	}

	if agg.DailyCounts, err = r.periodCount(ctx, "day", "c.data_consulta", consultationFrom, b, since, until); err != nil {
		return nil, err
	}
	if agg.DailyRevenue, err = r.periodRevenue(ctx, "day", revenueFrom, b, since, until); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *reportRepository) ChartAggregates(ctx context.Context, since, until time.Time) (*model.ChartAggregates, error) {
	none := filter.NewBuilder()
	agg := &model.ChartAggregates{}
	var err error

	if agg.ConsultationsByMonth, err = r.periodCount(ctx, "month", "c.data_consulta", " FROM consultas c", none, since, until); err != nil {
		return nil, err
	}
	revenueFrom := " FROM consulta_procedure cp JOIN consultas c ON c.id = cp.consulta_id"
	if agg.RevenueByMonth, err = r.periodRevenue(ctx, "month", revenueFrom, none, since, until); err != nil {
		return nil, err
	}
	if agg.AnimalsBySpecies, err = r.groupCount(ctx, "a.especie", " FROM animals a", none); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *reportRepository) DashboardAggregates(ctx context.Context, monthStart, monthEnd time.Time) (*model.DashboardAggregates, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM clientes) AS clientes,
			(SELECT COUNT(*) FROM animals) AS animais,
			(SELECT COUNT(*) FROM veterinarios) AS veterinarios,
			(SELECT COUNT(*) FROM consultas) AS consultas,
			(SELECT COUNT(*) FROM procedures) AS procedures,
			(SELECT COUNT(*) FROM consultas
				WHERE data_consulta >= $1 AND data_consulta < $2) AS consultas_mes,
			(SELECT COALESCE(SUM(cp.quantidade * cp.preco_unitario), 0)
				FROM consulta_procedure cp JOIN consultas c ON c.id = cp.consulta_id
				WHERE c.status <> 'cancelada' AND c.data_consulta >= $1 AND c.data_consulta < $2) AS receita_mes,
			(SELECT COUNT(*) FROM consultas WHERE status = 'agendada') AS pendentes
	`
	var agg model.DashboardAggregates
	if err := r.db.GetContext(ctx, &agg, query, monthStart, monthEnd); err != nil {
		return nil, fmt.Errorf("failed to load dashboard aggregates: %w", err)
	}
	return &agg, nil
}
