package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
)

type animalRepository struct {
	BaseRepository
}

func NewAnimalRepository(base BaseRepository) repository.AnimalRepository {
	return &animalRepository{base}
}

func (r *animalRepository) Create(ctx context.Context, animal *model.Animal) error {
	query := `
		INSERT INTO animals (cliente_id, nome, especie, raca, sexo, data_nascimento, peso, cor, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		animal.ClientID,
		animal.Name,
		animal.Species,
		animal.Breed,
		animal.Sex,
		animal.BirthDate,
		animal.Weight,
		animal.Color,
		animal.Notes,
	).Scan(&animal.ID, &animal.CreatedAt, &animal.UpdatedAt)
	return mapError(err, "create", "animal")
}

func (r *animalRepository) Get(ctx context.Context, id int64) (*model.Animal, error) {
	var animal model.Animal
	if err := r.db.GetContext(ctx, &animal, `SELECT * FROM animals WHERE id = $1`, id); err != nil {
		return nil, mapError(err, "get", "animal")
	}
	if err := loadOwners(ctx, r.BaseRepository, []*model.Animal{&animal}); err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *animalRepository) Update(ctx context.Context, animal *model.Animal) error {
	query := `
		UPDATE animals
		SET cliente_id = $1, nome = $2, especie = $3, raca = $4, sexo = $5,
			data_nascimento = $6, peso = $7, cor = $8, observacoes = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		animal.ClientID,
		animal.Name,
		animal.Species,
		animal.Breed,
		animal.Sex,
		animal.BirthDate,
		animal.Weight,
		animal.Color,
		animal.Notes,
		animal.ID,
	).Scan(&animal.CreatedAt, &animal.UpdatedAt)
	return mapError(err, "update", "animal")
}

func (r *animalRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete", "animal")
	}
	return mustAffect(res, "animal")
}

func (r *animalRepository) List(ctx context.Context, filters model.AnimalFilters) ([]*model.Animal, error) {
	b := filter.AnimalPredicates(filters)
	query := `SELECT a.* FROM animals a` + b.Where() + ` ORDER BY a.nome, a.id`

	animals := []*model.Animal{}
	if err := r.db.SelectContext(ctx, &animals, query, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	if err := loadOwners(ctx, r.BaseRepository, animals); err != nil {
		return nil, err
	}
	return animals, nil
}

// loadOwners attaches the owning client of every animal in one query.
func loadOwners(ctx context.Context, base BaseRepository, animals []*model.Animal) error {
	if len(animals) == 0 {
		return nil
	}

	seen := make(map[int64]bool, len(animals))
	ids := make([]int64, 0, len(animals))
	for _, a := range animals {
		if !seen[a.ClientID] {
			seen[a.ClientID] = true
			ids = append(ids, a.ClientID)
		}
	}

	var clients []*model.Client
	if err := base.db.SelectContext(ctx, &clients, `SELECT * FROM clientes WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load animal owners: %w", err)
	}
	byID := make(map[int64]*model.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	for _, a := range animals {
		a.Client = byID[a.ClientID]
	}
	return nil
}
