package client

import (
	"context"
	"fmt"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
)

type ClientServicer interface {
	CreateClient(ctx context.Context, req *model.ClientRequest) (*model.Client, error)
	GetClient(ctx context.Context, id int64) (*model.Client, error)
	UpdateClient(ctx context.Context, id int64, req *model.ClientRequest) (*model.Client, error)
	DeleteClient(ctx context.Context, id int64) error
	ListClients(ctx context.Context, filters model.ClientFilters) ([]*model.Client, error)
}

type Service struct {
	repo repository.ClientRepository
}

func NewService(repo repository.ClientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateClient(ctx context.Context, req *model.ClientRequest) (*model.Client, error) {
	client := &model.Client{}
	req.Apply(client)

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("client_id", client.ID).Msg("client created")
	return client, nil
}

func (s *Service) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, id int64, req *model.ClientRequest) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	req.Apply(client)
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeleteClient removes the client together with its animals and their
// consultations.
func (s *Service) DeleteClient(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("client_id", id).Msg("client deleted")
	return nil
}

func (s *Service) ListClients(ctx context.Context, filters model.ClientFilters) ([]*model.Client, error) {
	clients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
