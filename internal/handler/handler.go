package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/analytics"
	"github.com/BarkinBalci/launch-tracker/internal/dto"
	"github.com/BarkinBalci/launch-tracker/internal/service"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

// maxLogBytes caps the body of a manual log edit.
const maxLogBytes = 8 << 20

type Handler struct {
	dashboardService service.DashboardServicer
	router           *gin.Engine
	log              *zap.Logger
}

func NewHandler(dashboardService service.DashboardServicer, gatherer prometheus.Gatherer, log *zap.Logger) *Handler {
	h := &Handler{
		dashboardService: dashboardService,
		router:           gin.Default(),
		log:              log,
	}

	h.registerRoutes(gatherer)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes(gatherer prometheus.Gatherer) {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/launches", h.getLaunches)
	h.router.GET("/summary", h.getSummary)
	h.router.GET("/retailers", h.getRetailers)
	h.router.GET("/log", h.getLog)
	h.router.PUT("/log", h.replaceLog)
	h.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// bindQuery parses the common view parameters; it writes the 400 itself.
func (h *Handler) bindQuery(c *gin.Context) (analytics.Query, bool) {
	var req dto.LaunchesRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid view request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return analytics.Query{}, false
	}

	period, err := analytics.ParsePeriod(req.Period)
	if err != nil {
		h.log.Warn("Invalid view period", zap.String("period", req.Period))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return analytics.Query{}, false
	}

	return analytics.Query{Period: period, Retailers: req.Retailers}, true
}

// getLaunches handles GET /launches
// @Summary List launches
// @Description List logged launches of a period, newest first
// @Tags launches
// @Produce json
// @Param period query string false "View period" Enums(this_week, last_week, this_month, all_time)
// @Param retailer query []string false "Retailers to include (repeatable)"
// @Success 200 {object} dto.LaunchesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /launches [get]
func (h *Handler) getLaunches(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}

	launches, err := h.dashboardService.Launches(c.Request.Context(), q)
	if err != nil {
		h.log.Error("Failed to list launches", zap.Error(err), zap.String("period", string(q.Period)))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.LaunchesResponse{
		Period:   string(q.Period),
		Count:    len(launches),
		Launches: launches,
	})
}

// getSummary handles GET /summary
// @Summary Summarize launches
// @Description Page totals, launch count and per-retailer volume of a period
// @Tags launches
// @Produce json
// @Param period query string false "View period" Enums(this_week, last_week, this_month, all_time)
// @Param retailer query []string false "Retailers to include (repeatable)"
// @Success 200 {object} analytics.Summary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /summary [get]
func (h *Handler) getSummary(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), q)
	if err != nil {
		h.log.Error("Failed to summarize launches", zap.Error(err), zap.String("period", string(q.Period)))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getRetailers handles GET /retailers
// @Summary List retailers
// @Description Configured retailers in matching order
// @Tags retailers
// @Produce json
// @Success 200 {object} dto.RetailersResponse
// @Router /retailers [get]
func (h *Handler) getRetailers(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RetailersResponse{
		Retailers: h.dashboardService.Retailers(),
	})
}

// getLog handles GET /log
// @Summary Download the launch log
// @Description Raw CSV content; the ETag carries the version for a later PUT
// @Tags log
// @Produce text/csv
// @Success 200 {string} string
// @Failure 500 {object} dto.ErrorResponse
// @Router /log [get]
func (h *Handler) getLog(c *gin.Context) {
	snap, err := h.dashboardService.RawLog(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to read launch log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	if snap.Exists {
		c.Header("ETag", strconv.Quote(snap.Version))
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", snap.Content)
}

// replaceLog handles PUT /log
// @Summary Replace the launch log
// @Description Overwrite the log. If-Match must carry the ETag of the edited copy; use If-None-Match: * to create a missing log.
// @Tags log
// @Accept text/csv
// @Produce json
// @Param If-Match header string false "ETag from GET /log"
// @Param If-None-Match header string false "* to create the log"
// @Success 200 {object} dto.ReplaceLogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 412 {object} dto.ErrorResponse
// @Failure 428 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /log [put]
func (h *Handler) replaceLog(c *gin.Context) {
	expected, err := expectedVersion(c.GetHeader("If-Match"), c.GetHeader("If-None-Match"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errMissingPrecondition) {
			status = http.StatusPreconditionRequired
		}
		c.JSON(status, dto.ErrorResponse{
			Error:   "precondition_error",
			Message: err.Error(),
		})
		return
	}

	content, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxLogBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	version, err := h.dashboardService.ReplaceLog(c.Request.Context(), content, expected)
	switch {
	case errors.Is(err, store.ErrConflict):
		h.log.Warn("Launch log edit rejected as stale", zap.String("if_match", expected))
		c.JSON(http.StatusPreconditionFailed, dto.ErrorResponse{
			Error:   "conflict",
			Message: "the log changed since it was downloaded; fetch it again and reapply the edit",
		})
		return
	case errors.Is(err, store.ErrInvalidHeader):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	case err != nil:
		h.log.Error("Failed to replace launch log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("Launch log edited", zap.String("version", version))

	c.Header("ETag", strconv.Quote(version))
	c.JSON(http.StatusOK, dto.ReplaceLogResponse{
		Version: version,
		Status:  "replaced",
	})
}

var errMissingPrecondition = errors.New("If-Match or If-None-Match: * is required")

// expectedVersion maps the precondition headers onto a store version.
// An empty result means the log must not exist yet.
func expectedVersion(ifMatch, ifNoneMatch string) (string, error) {
	ifMatch = strings.TrimSpace(ifMatch)
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)

	switch {
	case ifMatch != "" && ifNoneMatch != "":
		return "", fmt.Errorf("If-Match and If-None-Match are mutually exclusive")
	case ifNoneMatch != "":
		if ifNoneMatch != "*" {
			return "", fmt.Errorf("only If-None-Match: * is supported")
		}
		return "", nil
	case ifMatch == "":
		return "", errMissingPrecondition
	case ifMatch == "*" || strings.HasPrefix(ifMatch, "W/") || strings.Contains(ifMatch, ","):
		return "", fmt.Errorf("If-Match must be a single strong ETag")
	}

	if v, err := strconv.Unquote(ifMatch); err == nil {
		ifMatch = v
	}
	if ifMatch == "" {
		return "", fmt.Errorf("If-Match must not be empty")
	}
	return ifMatch, nil
}
