package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
)

type procedureRepository struct {
	BaseRepository
}

func NewProcedureRepository(base BaseRepository) repository.ProcedureRepository {
	return &procedureRepository{base}
}

const procedureSelect = `
	SELECT p.*, COALESCE(u.total, 0) AS total_usos
	FROM procedures p
	LEFT JOIN (
		SELECT procedure_id, SUM(quantidade) AS total
		FROM consulta_procedure
		GROUP BY procedure_id
	) u ON u.procedure_id = p.id`

func (r *procedureRepository) Create(ctx context.Context, procedure *model.Procedure) error {
	query := `
		INSERT INTO procedures (nome, descricao, preco, duracao_minutos, ativo, categoria, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		procedure.Name,
		procedure.Description,
		procedure.Price,
		procedure.Duration,
		procedure.Active,
		procedure.Category,
		procedure.Notes,
	).Scan(&procedure.ID, &procedure.CreatedAt, &procedure.UpdatedAt)
	return mapError(err, "create", "procedure")
}

func (r *procedureRepository) Get(ctx context.Context, id int64) (*model.Procedure, error) {
	var procedure model.Procedure
	if err := r.db.GetContext(ctx, &procedure, procedureSelect+` WHERE p.id = $1`, id); err != nil {
		return nil, mapError(err, "get", "procedure")
	}
	return &procedure, nil
}

// GetMany returns the procedures with the given ids keyed by id. Unknown
// ids are absent from the map.
func (r *procedureRepository) GetMany(ctx context.Context, ids []int64) (map[int64]*model.Procedure, error) {
	out := make(map[int64]*model.Procedure, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var procedures []*model.Procedure
	if err := r.db.SelectContext(ctx, &procedures, `SELECT * FROM procedures WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get procedures: %w", err)
	}
	for _, p := range procedures {
		out[p.ID] = p
	}
	return out, nil
}

func (r *procedureRepository) Update(ctx context.Context, procedure *model.Procedure) error {
	query := `
		UPDATE procedures
		SET nome = $1, descricao = $2, preco = $3, duracao_minutos = $4, ativo = $5,
			categoria = $6, observacoes = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		procedure.Name,
		procedure.Description,
		procedure.Price,
		procedure.Duration,
		procedure.Active,
		procedure.Category,
		procedure.Notes,
		procedure.ID,
	).Scan(&procedure.CreatedAt, &procedure.UpdatedAt)
	return mapError(err, "update", "procedure")
}

func (r *procedureRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM procedures WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete", "procedure")
	}
	return mustAffect(res, "procedure")
}

func (r *procedureRepository) List(ctx context.Context, filters model.ProcedureFilters) ([]*model.Procedure, error) {
	b := filter.ProcedurePredicates(filters)
	query := procedureSelect + b.Where() + ` ORDER BY p.nome, p.id`

	procedures := []*model.Procedure{}
	if err := r.db.SelectContext(ctx, &procedures, query, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	return procedures, nil
}
