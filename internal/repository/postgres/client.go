package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
)

type clientRepository struct {
	BaseRepository
}

func NewClientRepository(base BaseRepository) repository.ClientRepository {
	return &clientRepository{base}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clientes (nome, email, telefone, cpf, endereco, cidade, estado, cep)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.NationalID,
		client.Address,
		client.City,
		client.State,
		client.PostalCode,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	return mapError(err, "create", "client")
}

func (r *clientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	var client model.Client
	if err := r.db.GetContext(ctx, &client, `SELECT * FROM clientes WHERE id = $1`, id); err != nil {
		return nil, mapError(err, "get", "client")
	}

	clients := []*model.Client{&client}
	if err := r.loadAnimals(ctx, clients); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clientes
		SET nome = $1, email = $2, telefone = $3, cpf = $4, endereco = $5,
			cidade = $6, estado = $7, cep = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.NationalID,
		client.Address,
		client.City,
		client.State,
		client.PostalCode,
		client.ID,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
	return mapError(err, "update", "client")
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete", "client")
	}
	return mustAffect(res, "client")
}

func (r *clientRepository) List(ctx context.Context, filters model.ClientFilters) ([]*model.Client, error) {
	b := filter.ClientPredicates(filters)
	query := `SELECT cl.* FROM clientes cl` + b.Where() + ` ORDER BY cl.nome, cl.id`

	clients := []*model.Client{}
	if err := r.db.SelectContext(ctx, &clients, query, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if err := r.loadAnimals(ctx, clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// loadAnimals attaches every animal of the given clients in one query.
func (r *clientRepository) loadAnimals(ctx context.Context, clients []*model.Client) error {
	if len(clients) == 0 {
		return nil
	}

	ids := make([]int64, len(clients))
	byID := make(map[int64]*model.Client, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
		byID[c.ID] = c
		c.Animals = []*model.Animal{}
	}

	var animals []*model.Animal
	query := `SELECT * FROM animals WHERE cliente_id = ANY($1) ORDER BY nome, id`
	if err := r.db.SelectContext(ctx, &animals, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load client animals: %w", err)
	}
	for _, a := range animals {
		if c, ok := byID[a.ClientID]; ok {
			c.Animals = append(c.Animals, a)
		}
	}
	return nil
}
