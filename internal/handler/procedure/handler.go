package procedure

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/handler"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	procedureService "github.com/jwalitptl/vetclinic-api/internal/service/procedure"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

type Handler struct {
	service procedureService.ProcedureServicer
	loc     *time.Location
}

func NewHandler(service procedureService.ProcedureServicer, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	procedures := r.Group("/procedures")
	{
		procedures.POST("", h.CreateProcedure)
		procedures.GET("", h.ListProcedures)
		procedures.GET("/:id", h.GetProcedure)
		procedures.PUT("/:id", h.UpdateProcedure)
		procedures.DELETE("/:id", h.DeleteProcedure)
	}
}

func (h *Handler) CreateProcedure(c *gin.Context) {
	var req model.ProcedureRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	procedure, err := h.service.CreateProcedure(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(procedure))
}

func (h *Handler) GetProcedure(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	procedure, err := h.service.GetProcedure(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(procedure))
}

func (h *Handler) UpdateProcedure(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req model.ProcedureRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	procedure, err := h.service.UpdateProcedure(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(procedure))
}

func (h *Handler) DeleteProcedure(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProcedure(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("procedure deleted"))
}

func (h *Handler) ListProcedures(c *gin.Context) {
	filters := filter.ParseProcedures(c.Request.URL.Query(), h.loc)

	items, err := h.service.ListProcedures(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}
