package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
)

type consultationRepository struct {
	BaseRepository
}

func NewConsultationRepository(base BaseRepository) repository.ConsultationRepository {
	return &consultationRepository{base}
}

const consultationFrom = `
	FROM consultas c
	JOIN animals a ON a.id = c.animal_id
	JOIN veterinarios v ON v.id = c.veterinario_id`

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation, procedures []*model.ConsultationProcedure) error {
	query := `
		INSERT INTO consultas (
			animal_id, veterinario_id, data_consulta, motivo, diagnostico,
			tratamento, observacoes, valor, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			consultation.AnimalID,
			consultation.VeterinarianID,
			consultation.ScheduledAt,
			consultation.Reason,
			consultation.Diagnosis,
			consultation.Treatment,
			consultation.Notes,
			consultation.Value,
			consultation.Status,
		).Scan(&consultation.ID, &consultation.CreatedAt, &consultation.UpdatedAt)
		if err != nil {
			return mapError(err, "create", "consultation")
		}
		return insertProcedures(ctx, tx, consultation.ID, procedures)
	})
}

func (r *consultationRepository) Get(ctx context.Context, id int64) (*model.Consultation, error) {
	var consultation model.Consultation
	if err := r.db.GetContext(ctx, &consultation, `SELECT * FROM consultas WHERE id = $1`, id); err != nil {
		return nil, mapError(err, "get", "consultation")
	}
	if err := r.loadRelations(ctx, []*model.Consultation{&consultation}); err != nil {
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) Update(ctx context.Context, consultation *model.Consultation, procedures []*model.ConsultationProcedure) error {
	query := `
		UPDATE consultas
		SET animal_id = $1, veterinario_id = $2, data_consulta = $3, motivo = $4,
			diagnostico = $5, tratamento = $6, observacoes = $7, valor = $8,
			status = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING created_at, updated_at
	`
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			consultation.AnimalID,
			consultation.VeterinarianID,
			consultation.ScheduledAt,
			consultation.Reason,
			consultation.Diagnosis,
			consultation.Treatment,
			consultation.Notes,
			consultation.Value,
			consultation.Status,
			consultation.ID,
		).Scan(&consultation.CreatedAt, &consultation.UpdatedAt)
		if err != nil {
			return mapError(err, "update", "consultation")
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM consulta_procedure WHERE consulta_id = $1`, consultation.ID); err != nil {
			return fmt.Errorf("failed to detach consultation procedures: %w", err)
		}
		return insertProcedures(ctx, tx, consultation.ID, procedures)
	})
}

func insertProcedures(ctx context.Context, tx *sqlx.Tx, consultationID int64, procedures []*model.ConsultationProcedure) error {
	query := `
		INSERT INTO consulta_procedure (consulta_id, procedure_id, quantidade, preco_unitario, observacoes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for _, p := range procedures {
		p.ConsultationID = consultationID
		err := tx.QueryRowxContext(ctx, query,
			consultationID,
			p.ProcedureID,
			p.Quantity,
			p.UnitPrice,
			p.Notes,
		).Scan(&p.ID)
		if err != nil {
			return mapError(err, "attach", "consultation procedure")
		}
	}
	return nil
}

func (r *consultationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM consultas WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete", "consultation")
	}
	return mustAffect(res, "consultation")
}

func (r *consultationRepository) List(ctx context.Context, filters model.ConsultationFilters) ([]*model.Consultation, error) {
	b := filter.ConsultationPredicates(filters)
	query := `SELECT c.*` + consultationFrom + b.Where() + ` ORDER BY c.data_consulta DESC, c.id DESC`

	consultations := []*model.Consultation{}
	if err := r.db.SelectContext(ctx, &consultations, query, b.Args()...); err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	if err := r.loadRelations(ctx, consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}

// loadRelations attaches animal (with owner), veterinarian and procedure
// rows to every consultation using one query per relation, then computes
// each total.
func (r *consultationRepository) loadRelations(ctx context.Context, consultations []*model.Consultation) error {
	if len(consultations) == 0 {
		return nil
	}

	ids := make([]int64, len(consultations))
	var animalIDs, vetIDs []int64
	seenAnimal := map[int64]bool{}
	seenVet := map[int64]bool{}
	byID := make(map[int64]*model.Consultation, len(consultations))
	for i, c := range consultations {
		ids[i] = c.ID
		byID[c.ID] = c
		c.Procedures = []*model.ConsultationProcedure{}
		if !seenAnimal[c.AnimalID] {
			seenAnimal[c.AnimalID] = true
			animalIDs = append(animalIDs, c.AnimalID)
		}
		if !seenVet[c.VeterinarianID] {
			seenVet[c.VeterinarianID] = true
			vetIDs = append(vetIDs, c.VeterinarianID)
		}
	}

	var animals []*model.Animal
	if err := r.db.SelectContext(ctx, &animals, `SELECT * FROM animals WHERE id = ANY($1)`, pq.Array(animalIDs)); err != nil {
		return fmt.Errorf("failed to load consultation animals: %w", err)
	}
	if err := loadOwners(ctx, r.BaseRepository, animals); err != nil {
		return err
	}
	animalByID := make(map[int64]*model.Animal, len(animals))
	for _, a := range animals {
		animalByID[a.ID] = a
	}

	var vets []*model.Veterinarian
	if err := r.db.SelectContext(ctx, &vets, `SELECT * FROM veterinarios WHERE id = ANY($1)`, pq.Array(vetIDs)); err != nil {
		return fmt.Errorf("failed to load consultation veterinarians: %w", err)
	}
	vetByID := make(map[int64]*model.Veterinarian, len(vets))
	for _, v := range vets {
		vetByID[v.ID] = v
	}

	var rows []*model.ConsultationProcedure
	query := `
		SELECT cp.id, cp.consulta_id, cp.procedure_id, cp.quantidade, cp.preco_unitario,
			cp.observacoes, p.nome AS procedure_nome, p.categoria AS procedure_categoria
		FROM consulta_procedure cp
		JOIN procedures p ON p.id = cp.procedure_id
		WHERE cp.consulta_id = ANY($1)
		ORDER BY cp.consulta_id, cp.id
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load consultation procedures: %w", err)
	}
	for _, p := range rows {
		if c, ok := byID[p.ConsultationID]; ok {
			c.Procedures = append(c.Procedures, p)
		}
	}

	for _, c := range consultations {
		c.Animal = animalByID[c.AnimalID]
		c.Veterinarian = vetByID[c.VeterinarianID]
		c.ComputeTotal()
	}
	return nil
}
