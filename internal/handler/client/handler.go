package client

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/handler"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	clientService "github.com/jwalitptl/vetclinic-api/internal/service/client"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

type Handler struct {
	service clientService.ClientServicer
	loc     *time.Location
}

func NewHandler(service clientService.ClientServicer, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("/clients")
	{
		clients.POST("", h.CreateClient)
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req model.ClientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	client, err := h.service.CreateClient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(client))
}

func (h *Handler) GetClient(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	client, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(client))
}

func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req model.ClientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	client, err := h.service.UpdateClient(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(client))
}

func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("client deleted"))
}

// ListClients accepts the same query parameters as the clients report.
func (h *Handler) ListClients(c *gin.Context) {
	filters := filter.ParseClients(c.Request.URL.Query(), h.loc)

	clients, err := h.service.ListClients(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(clients))
}
