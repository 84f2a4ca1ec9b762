package repository

import (
	"context"
	"time"

	"github.com/jwalitptl/vetclinic-api/internal/model"
)

// All repository interfaces in one file
type (
	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		Get(ctx context.Context, id int64) (*model.Client, error)
		Update(ctx context.Context, client *model.Client) error
		Delete(ctx context.Context, id int64) error
		// List returns every matching client with its animals loaded.
		List(ctx context.Context, filters model.ClientFilters) ([]*model.Client, error)
	}

	AnimalRepository interface {
		Create(ctx context.Context, animal *model.Animal) error
		Get(ctx context.Context, id int64) (*model.Animal, error)
		Update(ctx context.Context, animal *model.Animal) error
		Delete(ctx context.Context, id int64) error
		// List returns every matching animal with its owner loaded.
		List(ctx context.Context, filters model.AnimalFilters) ([]*model.Animal, error)
	}

	VeterinarianRepository interface {
		Create(ctx context.Context, vet *model.Veterinarian) error
		Get(ctx context.Context, id int64) (*model.Veterinarian, error)
		Update(ctx context.Context, vet *model.Veterinarian) error
		Delete(ctx context.Context, id int64) error
		// List returns every matching veterinarian with its consultation count.
		List(ctx context.Context, filters model.VeterinarianFilters) ([]*model.Veterinarian, error)
	}

	ProcedureRepository interface {
		Create(ctx context.Context, procedure *model.Procedure) error
		Get(ctx context.Context, id int64) (*model.Procedure, error)
		GetMany(ctx context.Context, ids []int64) (map[int64]*model.Procedure, error)
		Update(ctx context.Context, procedure *model.Procedure) error
		Delete(ctx context.Context, id int64) error
		// List returns every matching procedure with its usage total.
		List(ctx context.Context, filters model.ProcedureFilters) ([]*model.Procedure, error)
	}

	ConsultationRepository interface {
		// Create inserts the consultation and its procedure rows atomically.
		Create(ctx context.Context, consultation *model.Consultation, procedures []*model.ConsultationProcedure) error
		Get(ctx context.Context, id int64) (*model.Consultation, error)
		// Update replaces the consultation and all of its procedure rows.
		Update(ctx context.Context, consultation *model.Consultation, procedures []*model.ConsultationProcedure) error
		Delete(ctx context.Context, id int64) error
		// List returns every matching consultation with animal, owner,
		// veterinarian and procedures loaded.
		List(ctx context.Context, filters model.ConsultationFilters) ([]*model.Consultation, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	}

	// ReportRepository runs the grouped aggregations behind the reports.
	// Every filtered method applies the same predicates as the matching
	// entity List.
	ReportRepository interface {
		ClientAggregates(ctx context.Context, filters model.ClientFilters, since, until time.Time) (*model.ClientAggregates, error)
		AnimalAggregates(ctx context.Context, filters model.AnimalFilters, since, until time.Time) (*model.AnimalAggregates, error)
		ProcedureAggregates(ctx context.Context, filters model.ProcedureFilters) (*model.ProcedureAggregates, error)
		VeterinarianAggregates(ctx context.Context, filters model.VeterinarianFilters) (*model.VeterinarianAggregates, error)
		ConsultationAggregates(ctx context.Context, filters model.ConsultationFilters, since, until time.Time) (*model.ConsultationAggregates, error)
		ChartAggregates(ctx context.Context, since, until time.Time) (*model.ChartAggregates, error)
		DashboardAggregates(ctx context.Context, monthStart, monthEnd time.Time) (*model.DashboardAggregates, error)
	}
)
