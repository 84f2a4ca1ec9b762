package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
)

type veterinarianRepository struct {
	BaseRepository
}

func NewVeterinarianRepository(base BaseRepository) repository.VeterinarianRepository {
	return &veterinarianRepository{base}
}

const veterinarianSelect = `
	SELECT v.*, COALESCE(cc.total, 0) AS consultas_count
	FROM veterinarios v
	LEFT JOIN (
		SELECT veterinario_id, COUNT(*) AS total
		FROM consultas
		GROUP BY veterinario_id
	) cc ON cc.veterinario_id = v.id`

func (r *veterinarianRepository) Create(ctx context.Context, vet *model.Veterinarian) error {
	query := `
		INSERT INTO veterinarios (nome, email, telefone, crmv, especialidade, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		vet.Name,
		vet.Email,
		vet.Phone,
		vet.License,
		vet.Specialization,
		vet.Notes,
	).Scan(&vet.ID, &vet.CreatedAt, &vet.UpdatedAt)
	return mapError(err, "create", "veterinarian")
}

func (r *veterinarianRepository) Get(ctx context.Context, id int64) (*model.Veterinarian, error) {
	var vet model.Veterinarian
	if err := r.db.GetContext(ctx, &vet, veterinarianSelect+` WHERE v.id = $1`, id); err != nil {
		return nil, mapError(err, "get", "veterinarian")
	}
	return &vet, nil
}

func (r *veterinarianRepository) Update(ctx context.Context, vet *model.Veterinarian) error {
	query := `
		UPDATE veterinarios
		SET nome = $1, email = $2, telefone = $3, crmv = $4, especialidade = $5,
			observacoes = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		vet.Name,
		vet.Email,
		vet.Phone,
		vet.License,
		vet.Specialization,
		vet.Notes,
		vet.ID,
	).Scan(&vet.CreatedAt, &vet.UpdatedAt)
	return mapError(err, "update", "veterinarian")
}

func (r *veterinarianRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM veterinarios WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete", "veterinarian")
	}
	return mustAffect(res, "veterinarian")
}

func (r *veterinarianRepository) List(ctx context.Context, filters model.VeterinarianFilters) ([]*model.Veterinarian, error) {
	b := filter.VeterinarianPredicates(filters)
	query := veterinarianSelect + b.Where() + ` ORDER BY v.nome, v.id`

	vets := []*model.Veterinarian{}
	if err := r.db.SelectContext(ctx, &vets, query, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to list veterinarians: %w", err)
	}
	return vets, nil
}
