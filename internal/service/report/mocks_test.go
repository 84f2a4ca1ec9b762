package report

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/vetclinic-api/internal/model"
)

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) Create(ctx context.Context, c *model.Client) error { return m.Called(ctx, c).Error(0) }
func (m *mockClientRepo) Get(ctx context.Context, id int64) (*model.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Client)
	return c, args.Error(1)
}
func (m *mockClientRepo) Update(ctx context.Context, c *model.Client) error { return m.Called(ctx, c).Error(0) }
func (m *mockClientRepo) Delete(ctx context.Context, id int64) error        { return m.Called(ctx, id).Error(0) }
func (m *mockClientRepo) List(ctx context.Context, f model.ClientFilters) ([]*model.Client, error) {
	args := m.Called(ctx, f)
	c, _ := args.Get(0).([]*model.Client)
	return c, args.Error(1)
}

type mockConsultationRepo struct{ mock.Mock }

func (m *mockConsultationRepo) Create(ctx context.Context, c *model.Consultation, p []*model.ConsultationProcedure) error {
	return m.Called(ctx, c, p).Error(0)
}
func (m *mockConsultationRepo) Get(ctx context.Context, id int64) (*model.Consultation, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Consultation)
	return c, args.Error(1)
}
func (m *mockConsultationRepo) Update(ctx context.Context, c *model.Consultation, p []*model.ConsultationProcedure) error {
	return m.Called(ctx, c, p).Error(0)
}
func (m *mockConsultationRepo) Delete(ctx context.Context, id int64) error { return m.Called(ctx, id).Error(0) }
func (m *mockConsultationRepo) List(ctx context.Context, f model.ConsultationFilters) ([]*model.Consultation, error) {
	args := m.Called(ctx, f)
	c, _ := args.Get(0).([]*model.Consultation)
	return c, args.Error(1)
}

type mockAnimalRepo struct{ mock.Mock }

func (m *mockAnimalRepo) Create(ctx context.Context, a *model.Animal) error { return m.Called(ctx, a).Error(0) }
func (m *mockAnimalRepo) Get(ctx context.Context, id int64) (*model.Animal, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Animal)
	return a, args.Error(1)
}
func (m *mockAnimalRepo) Update(ctx context.Context, a *model.Animal) error { return m.Called(ctx, a).Error(0) }
func (m *mockAnimalRepo) Delete(ctx context.Context, id int64) error        { return m.Called(ctx, id).Error(0) }
func (m *mockAnimalRepo) List(ctx context.Context, f model.AnimalFilters) ([]*model.Animal, error) {
	args := m.Called(ctx, f)
	a, _ := args.Get(0).([]*model.Animal)
	return a, args.Error(1)
}

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
func (m *mockVeterinarianRepo) Delete(ctx context.Context, id int64) error { return m.Called(ctx, id).Error(0) }
func (m *mockVeterinarianRepo) List(ctx context.Context, f model.VeterinarianFilters) ([]*model.Veterinarian, error) {
	args := m.Called(ctx, f)
	v, _ := args.Get(0).([]*model.Veterinarian)
	return v, args.Error(1)
}

type mockProcedureRepo struct{ mock.Mock }

func (m *mockProcedureRepo) Create(ctx context.Context, p *model.Procedure) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProcedureRepo) Get(ctx context.Context, id int64) (*model.Procedure, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Procedure)
	return p, args.Error(1)
}
func (m *mockProcedureRepo) GetMany(ctx context.Context, ids []int64) (map[int64]*model.Procedure, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).(map[int64]*model.Procedure)
	return p, args.Error(1)
}
func (m *mockProcedureRepo) Update(ctx context.Context, p *model.Procedure) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProcedureRepo) Delete(ctx context.Context, id int64) error { return m.Called(ctx, id).Error(0) }
func (m *mockProcedureRepo) List(ctx context.Context, f model.ProcedureFilters) ([]*model.Procedure, error) {
	args := m.Called(ctx, f)
	p, _ := args.Get(0).([]*model.Procedure)
	return p, args.Error(1)
}

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) ClientAggregates(ctx context.Context, f model.ClientFilters, since, until time.Time) (*model.ClientAggregates, error) {
	args := m.Called(ctx, f, since, until)
	a, _ := args.Get(0).(*model.ClientAggregates)
	return a, args.Error(1)
}
func (m *mockReportRepo) AnimalAggregates(ctx context.Context, f model.AnimalFilters, since, until time.Time) (*model.AnimalAggregates, error) {
	args := m.Called(ctx, f, since, until)
	a, _ := args.Get(0).(*model.AnimalAggregates)
	return a, args.Error(1)
}
func (m *mockReportRepo) ProcedureAggregates(ctx context.Context, f model.ProcedureFilters) (*model.ProcedureAggregates, error) {
	args := m.Called(ctx, f)
	a, _ := args.Get(0).(*model.ProcedureAggregates)
	return a, args.Error(1)
}
func (m *mockReportRepo) VeterinarianAggregates(ctx context.Context, f model.VeterinarianFilters) (*model.VeterinarianAggregates, error) {
	args := m.Called(ctx, f)
	a, _ := args.Get(0).(*model.VeterinarianAggregates)
	return a, args.Error(1)
}
func (m *mockReportRepo) ConsultationAggregates(ctx context.Context, f model.ConsultationFilters, since, until time.Time) (*model.ConsultationAggregates, error) {
	args := m.Called(ctx, f, since, until)
	a, _ := args.Get(0).(*model.ConsultationAggregates)
	return a, args.Error(1)
}
func (m *mockReportRepo) ChartAggregates(ctx context.Context, since, until time.Time) (*model.ChartAggregates, error) {
	args := m.Called(ctx, since, until)
	a, _ := args.Get(0).(*model.ChartAggregates)
	return a, args.Error(1)
}
func (m *mockReportRepo) DashboardAggregates(ctx context.Context, start, end time.Time) (*model.DashboardAggregates, error) {
	args := m.Called(ctx, start, end)
	a, _ := args.Get(0).(*model.DashboardAggregates)
	return a, args.Error(1)
}
