package consultation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-api/internal/middleware"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	consultationService "github.com/jwalitptl/vetclinic-api/internal/service/consultation"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

// clinic is an in-memory stand-in for the consultation, animal,
// veterinarian and procedure tables.
type clinic struct {
	mu            sync.Mutex
	nextID        int64
	consultations map[int64]*model.Consultation
	lines         map[int64][]*model.ConsultationProcedure
	animals       map[int64]*model.Animal
	vets          map[int64]*model.Veterinarian
	procedures    map[int64]*model.Procedure
}

func newClinic() *clinic {
	return &clinic{
		consultations: map[int64]*model.Consultation{},
		lines:         map[int64][]*model.ConsultationProcedure{},
		animals:       map[int64]*model.Animal{3: {Base: model.Base{ID: 3}, Name: "Rex"}},
		vets:          map[int64]*model.Veterinarian{4: {Base: model.Base{ID: 4}, Name: "Dra. Ana"}},
		procedures: map[int64]*model.Procedure{
			10: {Base: model.Base{ID: 10}, Name: "Consulta", Price: decimal.RequireFromString("80"), Category: "consulta"},
			11: {Base: model.Base{ID: 11}, Name: "Vacina V10", Price: decimal.RequireFromString("95.50"), Category: "vacinacao"},
			12: {Base: model.Base{ID: 12}, Name: "Hemograma", Price: decimal.RequireFromString("120"), Category: "exame"},
		},
	}
}

type consultationStore struct{ *clinic }

func (s consultationStore) Create(_ context.Context, c *model.Consultation, lines []*model.ConsultationProcedure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	stored := *c
	s.consultations[c.ID] = &stored
	s.lines[c.ID] = s.freeze(c.ID, lines)
	return nil
}

func (s consultationStore) Get(_ context.Context, id int64) (*model.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.consultations[id]
	if !ok {
		return nil, apperrors.NotFound("consultation", nil)
	}
	out := *c
	out.Procedures = nil
	for _, l := range s.lines[id] {
		line := *l
		line.ProcedureName = s.procedures[l.ProcedureID].Name
		out.Procedures = append(out.Procedures, &line)
	}
	out.ComputeTotal()
	return &out, nil
}

func (s consultationStore) Update(_ context.Context, c *model.Consultation, lines []*model.ConsultationProcedure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	s.consultations[c.ID] = &stored
	s.lines[c.ID] = s.freeze(c.ID, lines)
	return nil
}

func (s consultationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.consultations[id]; !ok {
		return apperrors.NotFound("consultation", nil)
	}
	delete(s.consultations, id)
	delete(s.lines, id)
	return nil
}

func (s consultationStore) List(_ context.Context, _ model.ConsultationFilters) ([]*model.Consultation, error) {
	return nil, nil
}

func (s consultationStore) freeze(id int64, lines []*model.ConsultationProcedure) []*model.ConsultationProcedure {
	out := make([]*model.ConsultationProcedure, 0, len(lines))
	for _, l := range lines {
		row := *l
		row.ConsultationID = id
		out = append(out, &row)
	}
	return out
}

type animalStore struct{ *clinic }

func (s animalStore) Create(context.Context, *model.Animal) error { return nil }
func (s animalStore) Get(_ context.Context, id int64) (*model.Animal, error) {
	if a, ok := s.animals[id]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("animal", nil)
}
func (s animalStore) Update(context.Context, *model.Animal) error { return nil }
func (s animalStore) Delete(context.Context, int64) error         { return nil }
func (s animalStore) List(context.Context, model.AnimalFilters) ([]*model.Animal, error) {
	return nil, nil
}

type vetStore struct{ *clinic }

func (s vetStore) Create(context.Context, *model.Veterinarian) error { return nil }
func (s vetStore) Get(_ context.Context, id int64) (*model.Veterinarian, error) {
	if v, ok := s.vets[id]; ok {
		return v, nil
	}
	return nil, apperrors.NotFound("veterinarian", nil)
}
func (s vetStore) Update(context.Context, *model.Veterinarian) error { return nil }
func (s vetStore) Delete(context.Context, int64) error               { return nil }
func (s vetStore) List(context.Context, model.VeterinarianFilters) ([]*model.Veterinarian, error) {
	return nil, nil
}

type procedureStore struct{ *clinic }

func (s procedureStore) Create(context.Context, *model.Procedure) error { return nil }
func (s procedureStore) Get(_ context.Context, id int64) (*model.Procedure, error) {
	if p, ok := s.procedures[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("procedure", nil)
}
func (s procedureStore) GetMany(_ context.Context, ids []int64) (map[int64]*model.Procedure, error) {
	out := make(map[int64]*model.Procedure, len(ids))
	for _, id := range ids {
		if p, ok := s.procedures[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
func (s procedureStore) Update(context.Context, *model.Procedure) error { return nil }
func (s procedureStore) Delete(context.Context, int64) error            { return nil }
func (s procedureStore) List(context.Context, model.ProcedureFilters) ([]*model.Procedure, error) {
	return nil, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *clinic) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	db := newClinic()
	svc := consultationService.NewService(consultationStore{db}, animalStore{db}, vetStore{db}, procedureStore{db})

	r := gin.New()
	NewHandler(svc, time.UTC).RegisterRoutes(r.Group("/api/v1"))
	return r, db
}

type envelope struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Data    model.Consultation `json:"data"`
	Errors  map[string]string  `json:"errors"`
}

func serve(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

const threeProcedures = `{
	"animal_id": 3,
	"veterinario_id": 4,
	"data_consulta": "2024-07-01T10:00:00-03:00",
	"motivo": "check-up",
	"procedures": [
		{"procedure_id": 10, "quantidade": 2},
		{"procedure_id": 11},
		{"procedure_id": 12, "quantidade": 3, "preco_unitario": "110"}
	]
}`

func TestCreateThenGetConsultationRoundTrip(t *testing.T) {
	r, _ := setupRouter(t)

	w, created := serve(t, r, http.MethodPost, "/api/v1/consultations", threeProcedures)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotZero(t, created.Data.ID)
	assert.Equal(t, model.ConsultationStatusScheduled, created.Data.Status)

	w, got := serve(t, r, http.MethodGet, fmt.Sprintf("/api/v1/consultations/%d", created.Data.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, got.Data.Procedures, 3)

	want := []struct {
		id    int64
		qty   int
		price string
	}{
		{10, 2, "80"},
		{11, 1, "95.50"},
		{12, 3, "110"},
	}
	for i, line := range got.Data.Procedures {
		assert.Equal(t, want[i].id, line.ProcedureID)
		assert.Equal(t, want[i].qty, line.Quantity)
		assert.True(t, decimal.RequireFromString(want[i].price).Equal(line.UnitPrice), "line %d: %s", i, line.UnitPrice)
	}
	assert.True(t, decimal.RequireFromString("585.50").Equal(got.Data.Total), got.Data.Total.String())
}

func TestUpdateConsultationKeepsPriceAfterCatalogChange(t *testing.T) {
	r, db := setupRouter(t)

	w, created := serve(t, r, http.MethodPost, "/api/v1/consultations", threeProcedures)
	require.Equal(t, http.StatusCreated, w.Code)

	db.procedures[10].Price = decimal.RequireFromString("100")

	body := strings.Replace(threeProcedures, `"motivo": "check-up"`, `"motivo": "check-up", "status": "realizada"`, 1)
	w, updated := serve(t, r, http.MethodPut, fmt.Sprintf("/api/v1/consultations/%d", created.Data.ID), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.ConsultationStatusCompleted, updated.Data.Status)
	require.Len(t, updated.Data.Procedures, 3)
	assert.True(t, decimal.RequireFromString("80").Equal(updated.Data.Procedures[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("585.50").Equal(updated.Data.Total))
}

func TestCreateConsultationUnknownReferences(t *testing.T) {
	r, _ := setupRouter(t)

	body := strings.Replace(threeProcedures, `"animal_id": 3`, `"animal_id": 99`, 1)
	w, env := serve(t, r, http.MethodPost, "/api/v1/consultations", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "animal 99 does not exist", env.Message)

	body = strings.Replace(threeProcedures, `"procedure_id": 12`, `"procedure_id": 77`, 1)
	w, env = serve(t, r, http.MethodPost, "/api/v1/consultations", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "procedure 77 does not exist", env.Message)
}

func TestCreateConsultationValidation(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := serve(t, r, http.MethodPost, "/api/v1/consultations",
		`{"animal_id": 3, "veterinario_id": 4, "data_consulta": "2024-07-01T10:00:00Z", "procedures": [{"procedure_id": 0}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Errors, "motivo")
	assert.Contains(t, env.Errors, "procedures[0].procedure_id")

	body := strings.Replace(threeProcedures, `"motivo": "check-up"`, `"motivo": "check-up", "status": "adiada"`, 1)
	w, env = serve(t, r, http.MethodPost, "/api/v1/consultations", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Errors, "status")
}

func TestGetAndDeleteMissingConsultation(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := serve(t, r, http.MethodGet, "/api/v1/consultations/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, httputil.StatusError, env.Status)

	w, _ = serve(t, r, http.MethodDelete, "/api/v1/consultations/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = serve(t, r, http.MethodGet, "/api/v1/consultations/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid id", env.Message)
}

func TestDeleteConsultation(t *testing.T) {
	r, db := setupRouter(t)

	w, created := serve(t, r, http.MethodPost, "/api/v1/consultations", threeProcedures)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := serve(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/consultations/%d", created.Data.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "consultation deleted", env.Message)
	assert.Empty(t, db.lines)
}
