package consultation

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/handler"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	consultationService "github.com/jwalitptl/vetclinic-api/internal/service/consultation"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

type Handler struct {
	service consultationService.ConsultationServicer
	loc     *time.Location
}

func NewHandler(service consultationService.ConsultationServicer, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	consultations := r.Group("/consultations")
	{
		consultations.POST("", h.CreateConsultation)
		consultations.GET("", h.ListConsultations)
		consultations.GET("/:id", h.GetConsultation)
		consultations.PUT("/:id", h.UpdateConsultation)
		consultations.DELETE("/:id", h.DeleteConsultation)
	}
}

func (h *Handler) CreateConsultation(c *gin.Context) {
	var req model.ConsultationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	consultation, err := h.service.CreateConsultation(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(consultation))
}

func (h *Handler) GetConsultation(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	consultation, err := h.service.GetConsultation(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultation))
}

func (h *Handler) UpdateConsultation(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req model.ConsultationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	consultation, err := h.service.UpdateConsultation(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultation))
}

func (h *Handler) DeleteConsultation(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteConsultation(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("consultation deleted"))
}

// ListConsultations accepts the same query parameters as the consultation report.
func (h *Handler) ListConsultations(c *gin.Context) {
	filters := filter.ParseConsultations(c.Request.URL.Query(), h.loc)

	items, err := h.service.ListConsultations(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}
