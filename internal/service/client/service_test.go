package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
)

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) Create(ctx context.Context, c *model.Client) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockClientRepo) Get(ctx context.Context, id int64) (*model.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Client)
	return c, args.Error(1)
}
func (m *mockClientRepo) Update(ctx context.Context, c *model.Client) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockClientRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockClientRepo) List(ctx context.Context, f model.ClientFilters) ([]*model.Client, error) {
	args := m.Called(ctx, f)
	c, _ := args.Get(0).([]*model.Client)
	return c, args.Error(1)
}

func request() *model.ClientRequest {
	return &model.ClientRequest{
		Name:       "Maria Souza",
		Email:      "maria@example.com",
		Phone:      "11999990000",
		NationalID: "52998224725",
		Address:    "Rua A, 1",
		City:       "São Paulo",
		State:      "SP",
		PostalCode: "01001000",
	}
}

func TestCreateClient(t *testing.T) {
	repo := &mockClientRepo{}
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Client) bool {
		return c.Name == "Maria Souza" && c.NationalID == "52998224725" && c.State == "SP"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Client).ID = 7
	}).Return(nil)

	got, err := svc.CreateClient(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "01001000", got.PostalCode)
	repo.AssertExpectations(t)
}

func TestCreateClientDuplicate(t *testing.T) {
	repo := &mockClientRepo{}
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.Conflict("client already exists", nil))

	_, err := svc.CreateClient(context.Background(), request())
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestGetClientNotFound(t *testing.T) {
	repo := &mockClientRepo{}
	svc := NewService(repo)

	repo.On("Get", mock.Anything, int64(9)).Return(nil, apperrors.NotFound("client", nil))

	_, err := svc.GetClient(context.Background(), 9)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUpdateClientAppliesRequest(t *testing.T) {
	repo := &mockClientRepo{}
	svc := NewService(repo)

	existing := &model.Client{Base: model.Base{ID: 7}, Name: "Maria", City: "Campinas"}
	repo.On("Get", mock.Anything, int64(7)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	got, err := svc.UpdateClient(context.Background(), 7, request())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "Maria Souza", got.Name)
	assert.Equal(t, "São Paulo", got.City)
	repo.AssertExpectations(t)
}

func TestUpdateMissingClient(t *testing.T) {
	repo := &mockClientRepo{}
	svc := NewService(repo)

	repo.On("Get", mock.Anything, int64(7)).Return(nil, apperrors.NotFound("client", nil))

	_, err := svc.UpdateClient(context.Background(), 7, request())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteClient(t *testing.T) {
	repo := &mockClientRepo{}
	svc := NewService(repo)

	repo.On("Delete", mock.Anything, int64(7)).Return(nil).Once()
	repo.On("Delete", mock.Anything, int64(8)).Return(apperrors.NotFound("client", nil)).Once()

	require.NoError(t, svc.DeleteClient(context.Background(), 7))
	assert.True(t, apperrors.Is(svc.DeleteClient(context.Background(), 8), apperrors.ErrNotFound))
	repo.AssertExpectations(t)
}

func TestListClientsPassesFilters(t *testing.T) {
	repo := &mockClientRepo{}
	svc := NewService(repo)

	filters := model.ClientFilters{Search: "souza"}
	repo.On("List", mock.Anything, filters).Return([]*model.Client{{Name: "Maria Souza"}}, nil)

	got, err := svc.ListClients(context.Background(), filters)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
