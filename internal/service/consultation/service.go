package consultation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
)

type ConsultationServicer interface {
	CreateConsultation(ctx context.Context, req *model.ConsultationRequest) (*model.Consultation, error)
	GetConsultation(ctx context.Context, id int64) (*model.Consultation, error)
	UpdateConsultation(ctx context.Context, id int64, req *model.ConsultationRequest) (*model.Consultation, error)
	DeleteConsultation(ctx context.Context, id int64) error
	ListConsultations(ctx context.Context, filters model.ConsultationFilters) ([]*model.Consultation, error)
}

type Service struct {
	repo          repository.ConsultationRepository
	animals       repository.AnimalRepository
	veterinarians repository.VeterinarianRepository
	procedures    repository.ProcedureRepository
}

func NewService(
	repo repository.ConsultationRepository,
	animals repository.AnimalRepository,
	veterinarians repository.VeterinarianRepository,
	procedures repository.ProcedureRepository,
) *Service {
	return &Service{
		repo:          repo,
		animals:       animals,
		veterinarians: veterinarians,
		procedures:    procedures,
	}
}

func (s *Service) CreateConsultation(ctx context.Context, req *model.ConsultationRequest) (*model.Consultation, error) {
	consultation := &model.Consultation{}
	lines, err := s.prepare(ctx, consultation, req, nil)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, consultation, lines); err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("consultation_id", consultation.ID).
		Int("procedures", len(lines)).
		Msg("consultation created")
	return s.GetConsultation(ctx, consultation.ID)
}

// GetConsultation returns the consultation with animal, owner, veterinarian
// and attached procedures loaded and its total computed.
func (s *Service) GetConsultation(ctx context.Context, id int64) (*model.Consultation, error) {
	consultation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return consultation, nil
}

// UpdateConsultation replaces the consultation and its procedure list. Any
// status may follow any other. Procedures already billed keep their unit
// price unless the request sets one.
func (s *Service) UpdateConsultation(ctx context.Context, id int64, req *model.ConsultationRequest) (*model.Consultation, error) {
	consultation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}

	lines, err := s.prepare(ctx, consultation, req, billedPrices(consultation.Procedures))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, consultation, lines); err != nil {
		return nil, fmt.Errorf("failed to update consultation: %w", err)
	}
	return s.GetConsultation(ctx, id)
}

func (s *Service) DeleteConsultation(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete consultation: %w", err)
	}
	logger.FromContext(ctx).Info().Int64("consultation_id", id).Msg("consultation deleted")
	return nil
}

func (s *Service) ListConsultations(ctx context.Context, filters model.ConsultationFilters) ([]*model.Consultation, error) {
	consultations, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return consultations, nil
}

// prepare applies req onto c after checking its references, and resolves the
// procedure lines to attach.
func (s *Service) prepare(
	ctx context.Context,
	c *model.Consultation,
	req *model.ConsultationRequest,
	billed map[int64]decimal.Decimal,
) ([]*model.ConsultationProcedure, error) {
	if err := req.Apply(c); err != nil {
		if errors.Is(err, model.ErrInvalidStatus) {
			return nil, apperrors.Validation(map[string]string{"status": "must be agendada, realizada or cancelada"}, err)
		}
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	if _, err := s.animals.Get(ctx, c.AnimalID); err != nil {
		return nil, reference(err, "animal", c.AnimalID)
	}
	if _, err := s.veterinarians.Get(ctx, c.VeterinarianID); err != nil {
		return nil, reference(err, "veterinarian", c.VeterinarianID)
	}

	return s.lines(ctx, req.Procedures, billed)
}

// billedPrices indexes the unit prices already frozen on a consultation.
func billedPrices(lines []*model.ConsultationProcedure) map[int64]decimal.Decimal {
	out := make(map[int64]decimal.Decimal, len(lines))
	for _, l := range lines {
		out[l.ProcedureID] = l.UnitPrice
	}
	return out
}

// lines builds the pivot rows for the requested procedures. A line without a
// unit price keeps the price billed earlier on this consultation, or else
// takes the procedure's current catalog price, which is then frozen.
func (s *Service) lines(
	ctx context.Context,
	reqs []model.ConsultationProcedureRequest,
	billed map[int64]decimal.Decimal,
) ([]*model.ConsultationProcedure, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(reqs))
	seen := make(map[int64]bool, len(reqs))
	for _, r := range reqs {
		if seen[r.ProcedureID] {
			return nil, apperrors.Validation(map[string]string{
				"procedures": fmt.Sprintf("procedure %d listed more than once", r.ProcedureID),
			}, nil)
		}
		seen[r.ProcedureID] = true
		ids = append(ids, r.ProcedureID)
	}

	catalog, err := s.procedures.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load procedures: %w", err)
	}

	out := make([]*model.ConsultationProcedure, 0, len(reqs))
	for _, r := range reqs {
		p, ok := catalog[r.ProcedureID]
		if !ok {
			return nil, apperrors.BadRequest(fmt.Sprintf("procedure %d does not exist", r.ProcedureID), nil)
		}

		line := &model.ConsultationProcedure{
			ProcedureID:   p.ID,
			Quantity:      r.Quantity,
			UnitPrice:     p.Price,
			Notes:         r.Notes,
			ProcedureName: p.Name,
			Category:      p.Category,
		}
		if price, ok := billed[p.ID]; ok {
			line.UnitPrice = price
		}
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		if r.UnitPrice != nil {
			if r.UnitPrice.IsNegative() {
				return nil, apperrors.Validation(map[string]string{
					"preco_unitario": "must be zero or greater",
				}, nil)
			}
			line.UnitPrice = *r.UnitPrice
		}
		out = append(out, line)
	}
	return out, nil
}

func reference(err error, resource string, id int64) error {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return apperrors.BadRequest(fmt.Sprintf("%s %d does not exist", resource, id), err)
	}
	return fmt.Errorf("failed to get %s: %w", resource, err)
}
