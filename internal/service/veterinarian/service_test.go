package veterinarian

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
)

type mockVeterinarianRepo struct{ mock.Mock }

func (m *mockVeterinarianRepo) Create(ctx context.Context, v *model.Veterinarian) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockVeterinarianRepo) Get(ctx context.Context, id int64) (*model.Veterinarian, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Veterinarian)
	return v, args.Error(1)
}
func (m *mockVeterinarianRepo) Update(ctx context.Context, v *model.Veterinarian) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockVeterinarianRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockVeterinarianRepo) List(ctx context.Context, f model.VeterinarianFilters) ([]*model.Veterinarian, error) {
	args := m.Called(ctx, f)
	v, _ := args.Get(0).([]*model.Veterinarian)
	return v, args.Error(1)
}

func ana() *model.VeterinarianRequest {
	return &model.VeterinarianRequest{Name: "Dra. Ana", Email: "ana@clinica.com", Phone: "1133330000", License: "SP-12345"}
}

func TestCreateVeterinarian(t *testing.T) {
	repo := &mockVeterinarianRepo{}
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(v *model.Veterinarian) bool {
		return v.License == "SP-12345"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Veterinarian).ID = 4
	}).Return(nil)

	got, err := svc.CreateVeterinarian(context.Background(), ana())
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
	repo.AssertExpectations(t)
}

func TestCreateVeterinarianDuplicateLicense(t *testing.T) {
	repo := &mockVeterinarianRepo{}
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.Conflict("veterinarian already exists", nil))

	_, err := svc.CreateVeterinarian(context.Background(), ana())
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestUpdateVeterinarian(t *testing.T) {
	repo := &mockVeterinarianRepo{}
	svc := NewService(repo)

	existing := &model.Veterinarian{Base: model.Base{ID: 4}, Name: "Ana"}
	repo.On("Get", mock.Anything, int64(4)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	got, err := svc.UpdateVeterinarian(context.Background(), 4, ana())
	require.NoError(t, err)
	assert.Equal(t, "Dra. Ana", got.Name)
	repo.AssertExpectations(t)
}

func TestGetVeterinarianNotFound(t *testing.T) {
	repo := &mockVeterinarianRepo{}
	svc := NewService(repo)

	repo.On("Get", mock.Anything, int64(4)).Return(nil, apperrors.NotFound("veterinarian", nil))

	_, err := svc.GetVeterinarian(context.Background(), 4)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteVeterinarianNotFound(t *testing.T) {
	repo := &mockVeterinarianRepo{}
	svc := NewService(repo)

	repo.On("Delete", mock.Anything, int64(4)).Return(apperrors.NotFound("veterinarian", nil))

	assert.True(t, apperrors.Is(svc.DeleteVeterinarian(context.Background(), 4), apperrors.ErrNotFound))
}

func TestListVeterinarians(t *testing.T) {
	repo := &mockVeterinarianRepo{}
	svc := NewService(repo)

	filters := model.VeterinarianFilters{Search: "ana"}
	repo.On("List", mock.Anything, filters).Return([]*model.Veterinarian{{Name: "Dra. Ana"}}, nil)

	got, err := svc.ListVeterinarians(context.Background(), filters)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
