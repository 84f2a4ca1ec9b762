package procedure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-api/internal/middleware"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

type mockProcedureService struct{ mock.Mock }

func (m *mockProcedureService) CreateProcedure(ctx context.Context, req *model.ProcedureRequest) (*model.Procedure, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*model.Procedure)
	return p, args.Error(1)
}
func (m *mockProcedureService) GetProcedure(ctx context.Context, id int64) (*model.Procedure, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Procedure)
	return p, args.Error(1)
}
func (m *mockProcedureService) UpdateProcedure(ctx context.Context, id int64, req *model.ProcedureRequest) (*model.Procedure, error) {
	args := m.Called(ctx, id, req)
	p, _ := args.Get(0).(*model.Procedure)
	return p, args.Error(1)
}
func (m *mockProcedureService) DeleteProcedure(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockProcedureService) ListProcedures(ctx context.Context, f model.ProcedureFilters) ([]*model.Procedure, error) {
	args := m.Called(ctx, f)
	p, _ := args.Get(0).([]*model.Procedure)
	return p, args.Error(1)
}

func setupRouter(t *testing.T) (*gin.Engine, *mockProcedureService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	svc := &mockProcedureService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })

	r := gin.New()
	NewHandler(svc, time.UTC).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func serve(r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, httputil.Response) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp httputil.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCreateProcedure(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("CreateProcedure", mock.Anything, mock.MatchedBy(func(req *model.ProcedureRequest) bool {
		return req.Price.Equal(decimal.RequireFromString("95.5")) && req.Duration == 10
	})).Return(&model.Procedure{Base: model.Base{ID: 3}, Name: "Vacina V10"}, nil)

	w, _ := serve(r, http.MethodPost, "/api/v1/procedures",
		`{"nome": "Vacina V10", "preco": "95.50", "duracao_minutos": 10, "categoria": "vacinacao"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":3`)
}

func TestCreateProcedureNegativePrice(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("CreateProcedure", mock.Anything, mock.Anything).
		Return(nil, apperrors.Validation(map[string]string{"preco": "must be zero or greater"}, nil))

	w, resp := serve(r, http.MethodPost, "/api/v1/procedures",
		`{"nome": "Vacina V10", "preco": -1, "duracao_minutos": 10, "categoria": "vacinacao"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be zero or greater", resp.Errors["preco"])
}

func TestCreateProcedureValidation(t *testing.T) {
	r, _ := setupRouter(t)

	w, resp := serve(r, http.MethodPost, "/api/v1/procedures", `{"nome": "Vacina V10", "preco": 10, "duracao_minutos": 0, "categoria": "vacinacao"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Errors, "duracao_minutos")
}

func TestGetProcedure(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("GetProcedure", mock.Anything, int64(3)).Return(&model.Procedure{Base: model.Base{ID: 3}}, nil)
	svc.On("GetProcedure", mock.Anything, int64(4)).Return(nil, apperrors.NotFound("procedure", nil))

	w, _ := serve(r, http.MethodGet, "/api/v1/procedures/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = serve(r, http.MethodGet, "/api/v1/procedures/4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = serve(r, http.MethodGet, "/api/v1/procedures/1.5", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProcedureInUse(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("DeleteProcedure", mock.Anything, int64(3)).Return(apperrors.Conflict("procedure is in use", nil))

	w, resp := serve(r, http.MethodDelete, "/api/v1/procedures/3", "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "procedure is in use", resp.Message)
}

func TestListProceduresParsesFilters(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("ListProcedures", mock.Anything, mock.MatchedBy(func(f model.ProcedureFilters) bool {
		return f.Active != nil && *f.Active &&
			f.MinPrice != nil && f.MinPrice.Equal(decimal.RequireFromString("10.5")) &&
			f.MaxPrice == nil
	})).Return([]*model.Procedure{{Name: "Hemograma"}}, nil)

	w, _ := serve(r, http.MethodGet, "/api/v1/procedures?ativo=sim&preco_min=10,5&preco_max=abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hemograma")
}
