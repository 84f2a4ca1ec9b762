package report

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/middleware"
	reportService "github.com/jwalitptl/vetclinic-api/internal/service/report"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
)

var timeNow = time.Now

// Handler serves the report payloads as bare JSON objects.
type Handler struct {
	service reportService.ReportService
}

func NewHandler(service reportService.ReportService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/clients", h.Clients)
		reports.GET("/pets", h.Pets)
		reports.GET("/procedures", h.Procedures)
		reports.GET("/veterinarians", h.Veterinarians)
		reports.GET("/consultations", h.Consultations)
		reports.GET("/charts", h.Charts)
		reports.GET("/:type/export", h.Export)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	rep, err := h.service.Dashboard(c.Request.Context(), middleware.GetPrincipal(c))
	h.respond(c, rep, err)
}

func (h *Handler) Clients(c *gin.Context) {
	f := filter.ParseClients(c.Request.URL.Query(), h.service.Location())
	rep, err := h.service.Clients(c.Request.Context(), middleware.GetPrincipal(c), f)
	h.respond(c, rep, err)
}

func (h *Handler) Pets(c *gin.Context) {
	f := filter.ParseAnimals(c.Request.URL.Query(), h.service.Location())
	rep, err := h.service.Animals(c.Request.Context(), middleware.GetPrincipal(c), f)
	h.respond(c, rep, err)
}

func (h *Handler) Procedures(c *gin.Context) {
	f := filter.ParseProcedures(c.Request.URL.Query(), h.service.Location())
	rep, err := h.service.Procedures(c.Request.Context(), middleware.GetPrincipal(c), f)
	h.respond(c, rep, err)
}

func (h *Handler) Veterinarians(c *gin.Context) {
	f := filter.ParseVeterinarians(c.Request.URL.Query(), h.service.Location())
	rep, err := h.service.Veterinarians(c.Request.Context(), middleware.GetPrincipal(c), f)
	h.respond(c, rep, err)
}

func (h *Handler) Consultations(c *gin.Context) {
	f := filter.ParseConsultations(c.Request.URL.Query(), h.service.Location())
	rep, err := h.service.Consultations(c.Request.Context(), middleware.GetPrincipal(c), f)
	h.respond(c, rep, err)
}

func (h *Handler) Charts(c *gin.Context) {
	rep, err := h.service.Charts(c.Request.Context(), middleware.GetPrincipal(c))
	h.respond(c, rep, err)
}

// Export writes the rows behind a report as a CSV attachment.
func (h *Handler) Export(c *gin.Context) {
	kind, ok := reportService.ParseKind(c.Param("type"))
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("report", nil))
		return
	}

	table, err := h.service.Export(c.Request.Context(), middleware.GetPrincipal(c), kind, c.Request.URL.Query())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	stamp := timeNow().In(h.service.Location()).Format("20060102_150405")
	filename := fmt.Sprintf("relatorio_%s_%s.csv", kind, stamp)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) respond(c *gin.Context, payload interface{}, err error) {
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}
