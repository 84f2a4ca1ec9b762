package veterinarian

import (
	"context"
	"fmt"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
)

type VeterinarianServicer interface {
	CreateVeterinarian(ctx context.Context, req *model.VeterinarianRequest) (*model.Veterinarian, error)
	GetVeterinarian(ctx context.Context, id int64) (*model.Veterinarian, error)
	UpdateVeterinarian(ctx context.Context, id int64, req *model.VeterinarianRequest) (*model.Veterinarian, error)
	DeleteVeterinarian(ctx context.Context, id int64) error
	ListVeterinarians(ctx context.Context, filters model.VeterinarianFilters) ([]*model.Veterinarian, error)
}

type Service struct {
	repo repository.VeterinarianRepository
}

func NewService(repo repository.VeterinarianRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateVeterinarian(ctx context.Context, req *model.VeterinarianRequest) (*model.Veterinarian, error) {
	vet := &model.Veterinarian{}
	req.Apply(vet)

	if err := s.repo.Create(ctx, vet); err != nil {
		return nil, fmt.Errorf("failed to create veterinarian: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("veterinarian_id", vet.ID).Str("crmv", vet.License).Msg("veterinarian created")
	return vet, nil
}

func (s *Service) GetVeterinarian(ctx context.Context, id int64) (*model.Veterinarian, error) {
	vet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get veterinarian: %w", err)
	}
	return vet, nil
}

func (s *Service) UpdateVeterinarian(ctx context.Context, id int64, req *model.VeterinarianRequest) (*model.Veterinarian, error) {
	vet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get veterinarian: %w", err)
	}

	req.Apply(vet)
	if err := s.repo.Update(ctx, vet); err != nil {
		return nil, fmt.Errorf("failed to update veterinarian: %w", err)
	}
	return vet, nil
}

func (s *Service) DeleteVeterinarian(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete veterinarian: %w", err)
	}
	logger.FromContext(ctx).Info().Int64("veterinarian_id", id).Msg("veterinarian deleted")
	return nil
}

func (s *Service) ListVeterinarians(ctx context.Context, filters model.VeterinarianFilters) ([]*model.Veterinarian, error) {
	vets, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list veterinarians: %w", err)
	}
	return vets, nil
}
