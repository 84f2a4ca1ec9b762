package animal

import (
	"context"
	"fmt"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
)

type AnimalServicer interface {
	CreateAnimal(ctx context.Context, req *model.AnimalRequest) (*model.Animal, error)
	GetAnimal(ctx context.Context, id int64) (*model.Animal, error)
	UpdateAnimal(ctx context.Context, id int64, req *model.AnimalRequest) (*model.Animal, error)
	DeleteAnimal(ctx context.Context, id int64) error
	ListAnimals(ctx context.Context, filters model.AnimalFilters) ([]*model.Animal, error)
}

type Service struct {
	repo    repository.AnimalRepository
	clients repository.ClientRepository
}

func NewService(repo repository.AnimalRepository, clients repository.ClientRepository) *Service {
	return &Service{repo: repo, clients: clients}
}

func (s *Service) CreateAnimal(ctx context.Context, req *model.AnimalRequest) (*model.Animal, error) {
	owner, err := s.owner(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	animal := &model.Animal{}
	req.Apply(animal)
	if err := s.repo.Create(ctx, animal); err != nil {
		return nil, fmt.Errorf("failed to create animal: %w", err)
	}
	animal.Client = owner

	logger.FromContext(ctx).Info().
		Int64("animal_id", animal.ID).
		Int64("client_id", animal.ClientID).
		Msg("animal created")
	return animal, nil
}

func (s *Service) GetAnimal(ctx context.Context, id int64) (*model.Animal, error) {
	animal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get animal: %w", err)
	}
	return animal, nil
}

func (s *Service) UpdateAnimal(ctx context.Context, id int64, req *model.AnimalRequest) (*model.Animal, error) {
	animal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get animal: %w", err)
	}

	if animal.ClientID != req.ClientID {
		owner, err := s.owner(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		animal.Client = owner
	}

	req.Apply(animal)
	if err := s.repo.Update(ctx, animal); err != nil {
		return nil, fmt.Errorf("failed to update animal: %w", err)
	}
	return animal, nil
}

// DeleteAnimal removes the animal and its consultations.
func (s *Service) DeleteAnimal(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete animal: %w", err)
	}
	logger.FromContext(ctx).Info().Int64("animal_id", id).Msg("animal deleted")
	return nil
}

func (s *Service) ListAnimals(ctx context.Context, filters model.AnimalFilters) ([]*model.Animal, error) {
	animals, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	return animals, nil
}

// owner loads the client an animal is being attached to. An unknown client
// is a bad request, not a missing animal.
func (s *Service) owner(ctx context.Context, clientID int64) (*model.Client, error) {
	client, err := s.clients.Get(ctx, clientID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.BadRequest(fmt.Sprintf("client %d does not exist", clientID), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}
