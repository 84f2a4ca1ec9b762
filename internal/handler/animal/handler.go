package animal

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/handler"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	animalService "github.com/jwalitptl/vetclinic-api/internal/service/animal"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

type Handler struct {
	service animalService.AnimalServicer
	loc     *time.Location
}

func NewHandler(service animalService.AnimalServicer, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	animals := r.Group("/animals")
	{
		animals.POST("", h.CreateAnimal)
		animals.GET("", h.ListAnimals)
		animals.GET("/:id", h.GetAnimal)
		animals.PUT("/:id", h.UpdateAnimal)
		animals.DELETE("/:id", h.DeleteAnimal)
	}
}

func (h *Handler) CreateAnimal(c *gin.Context) {
	var req model.AnimalRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	animal, err := h.service.CreateAnimal(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(animal))
}

func (h *Handler) GetAnimal(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	animal, err := h.service.GetAnimal(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(animal))
}

func (h *Handler) UpdateAnimal(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req model.AnimalRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	animal, err := h.service.UpdateAnimal(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(animal))
}

func (h *Handler) DeleteAnimal(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAnimal(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("animal deleted"))
}

// ListAnimals accepts the same query parameters as the pets report.
func (h *Handler) ListAnimals(c *gin.Context) {
	filters := filter.ParseAnimals(c.Request.URL.Query(), h.loc)

	items, err := h.service.ListAnimals(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}
