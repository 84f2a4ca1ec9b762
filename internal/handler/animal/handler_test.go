package animal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-api/internal/middleware"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

type mockAnimalService struct{ mock.Mock }

func (m *mockAnimalService) CreateAnimal(ctx context.Context, req *model.AnimalRequest) (*model.Animal, error) {
	args := m.Called(ctx, req)
	a, _ := args.Get(0).(*model.Animal)
	return a, args.Error(1)
}
func (m *mockAnimalService) GetAnimal(ctx context.Context, id int64) (*model.Animal, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Animal)
	return a, args.Error(1)
}
func (m *mockAnimalService) UpdateAnimal(ctx context.Context, id int64, req *model.AnimalRequest) (*model.Animal, error) {
	args := m.Called(ctx, id, req)
	a, _ := args.Get(0).(*model.Animal)
	return a, args.Error(1)
}
func (m *mockAnimalService) DeleteAnimal(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockAnimalService) ListAnimals(ctx context.Context, f model.AnimalFilters) ([]*model.Animal, error) {
	args := m.Called(ctx, f)
	a, _ := args.Get(0).([]*model.Animal)
	return a, args.Error(1)
}

func setupRouter(t *testing.T) (*gin.Engine, *mockAnimalService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	svc := &mockAnimalService{}
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

const rex = `{"cliente_id": 5, "nome": "Rex", "especie": "Cachorro", "sexo": "macho"}`

func TestCreateAnimal(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("CreateAnimal", mock.Anything, mock.MatchedBy(func(req *model.AnimalRequest) bool {
		return req.ClientID == 5 && req.Sex == model.SexMale
	})).Return(&model.Animal{Base: model.Base{ID: 11}, ClientID: 5, Name: "Rex"}, nil)

	w, _ := serve(r, http.MethodPost, "/api/v1/animals", rex)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":11`)
}

func TestCreateAnimalUnknownOwner(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("CreateAnimal", mock.Anything, mock.Anything).
		Return(nil, apperrors.BadRequest("client 5 does not exist", nil))

	w, resp := serve(r, http.MethodPost, "/api/v1/animals", rex)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "client 5 does not exist", resp.Message)
}

func TestCreateAnimalValidation(t *testing.T) {
	r, _ := setupRouter(t)

	w, resp := serve(r, http.MethodPost, "/api/v1/animals", `{"cliente_id": 0, "nome": "Rex", "especie": "Cachorro", "sexo": "outro"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Errors, "cliente_id")
	assert.Contains(t, resp.Errors, "sexo")
}

func TestGetAnimalNotFound(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("GetAnimal", mock.Anything, int64(3)).Return(nil, apperrors.NotFound("animal", nil))

	w, resp := serve(r, http.MethodGet, "/api/v1/animals/3", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "animal not found", resp.Message)
}

func TestAnimalInvalidID(t *testing.T) {
	r, _ := setupRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w, resp := serve(r, method, "/api/v1/animals/-1", rex)
		assert.Equal(t, http.StatusBadRequest, w.Code, method)
		assert.Equal(t, "invalid id", resp.Message, method)
	}
}

func TestUpdateAnimal(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("UpdateAnimal", mock.Anything, int64(11), mock.AnythingOfType("*model.AnimalRequest")).
		Return(&model.Animal{Base: model.Base{ID: 11}, Name: "Rex"}, nil)

	w, _ := serve(r, http.MethodPut, "/api/v1/animals/11", rex)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAnimal(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("DeleteAnimal", mock.Anything, int64(11)).Return(nil)

	w, resp := serve(r, http.MethodDelete, "/api/v1/animals/11", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "animal deleted", resp.Message)
}

func TestListAnimalsParsesFilters(t *testing.T) {
	r, svc := setupRouter(t)

	svc.On("ListAnimals", mock.Anything, model.AnimalFilters{Species: "Gato", Sex: model.SexFemale}).
		Return([]*model.Animal{{Name: "Mimi"}}, nil)

	w, _ := serve(r, http.MethodGet, "/api/v1/animals?especie=Gato&sexo=FEMEA", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mimi")
}
