package veterinarian

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/handler"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	veterinarianService "github.com/jwalitptl/vetclinic-api/internal/service/veterinarian"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

type Handler struct {
	service veterinarianService.VeterinarianServicer
	loc     *time.Location
}

func NewHandler(service veterinarianService.VeterinarianServicer, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	veterinarians := r.Group("/veterinarians")
	{
		veterinarians.POST("", h.CreateVeterinarian)
		veterinarians.GET("", h.ListVeterinarians)
		veterinarians.GET("/:id", h.GetVeterinarian)
		veterinarians.PUT("/:id", h.UpdateVeterinarian)
		veterinarians.DELETE("/:id", h.DeleteVeterinarian)
	}
}

func (h *Handler) CreateVeterinarian(c *gin.Context) {
	var req model.VeterinarianRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	veterinarian, err := h.service.CreateVeterinarian(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(veterinarian))
}

func (h *Handler) GetVeterinarian(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	veterinarian, err := h.service.GetVeterinarian(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(veterinarian))
}

func (h *Handler) UpdateVeterinarian(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req model.VeterinarianRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	veterinarian, err := h.service.UpdateVeterinarian(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(veterinarian))
}

func (h *Handler) DeleteVeterinarian(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVeterinarian(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("veterinarian deleted"))
}

func (h *Handler) ListVeterinarians(c *gin.Context) {
	filters := filter.ParseVeterinarians(c.Request.URL.Query(), h.loc)

	items, err := h.service.ListVeterinarians(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}
