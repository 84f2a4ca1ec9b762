package procedure

import (
	"context"
	"fmt"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
)

type ProcedureServicer interface {
	CreateProcedure(ctx context.Context, req *model.ProcedureRequest) (*model.Procedure, error)
	GetProcedure(ctx context.Context, id int64) (*model.Procedure, error)
	UpdateProcedure(ctx context.Context, id int64, req *model.ProcedureRequest) (*model.Procedure, error)
	DeleteProcedure(ctx context.Context, id int64) error
	ListProcedures(ctx context.Context, filters model.ProcedureFilters) ([]*model.Procedure, error)
}

type Service struct {
	repo repository.ProcedureRepository
}

func NewService(repo repository.ProcedureRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProcedure(ctx context.Context, req *model.ProcedureRequest) (*model.Procedure, error) {
	if err := validatePrice(req); err != nil {
		return nil, err
	}

	procedure := &model.Procedure{}
	req.Apply(procedure)
	if err := s.repo.Create(ctx, procedure); err != nil {
		return nil, fmt.Errorf("failed to create procedure: %w", err)
	}
	return procedure, nil
}

func (s *Service) GetProcedure(ctx context.Context, id int64) (*model.Procedure, error) {
	procedure, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}
	return procedure, nil
}

// UpdateProcedure changes the catalog entry only; prices already attached to
// consultations keep their snapshot.
func (s *Service) UpdateProcedure(ctx context.Context, id int64, req *model.ProcedureRequest) (*model.Procedure, error) {
	if err := validatePrice(req); err != nil {
		return nil, err
	}

	procedure, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}

	req.Apply(procedure)
	if err := s.repo.Update(ctx, procedure); err != nil {
		return nil, fmt.Errorf("failed to update procedure: %w", err)
	}
	return procedure, nil
}

func (s *Service) DeleteProcedure(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete procedure: %w", err)
	}
	return nil
}

func (s *Service) ListProcedures(ctx context.Context, filters model.ProcedureFilters) ([]*model.Procedure, error) {
	procedures, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	return procedures, nil
}

func validatePrice(req *model.ProcedureRequest) error {
	if req.Price.IsNegative() {
		return apperrors.Validation(map[string]string{"preco": "must be zero or greater"}, nil)
	}
	return nil
}
