package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sla-dashboard/internal/dashboard"
	"sla-dashboard/internal/http/middleware"
	"sla-dashboard/internal/metrics"
	"sla-dashboard/internal/model"
	"sla-dashboard/internal/repository"
	"sla-dashboard/internal/service"
)

type Handler struct {
	sla     *service.SLAService
	metrics *metrics.Collector
	log     zerolog.Logger
	now     func() time.Time
}

func NewHandler(sla *service.SLAService, collector *metrics.Collector, log zerolog.Logger) *Handler {
	return &Handler{sla: sla, metrics: collector, log: log, now: time.Now}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.getDashboard)
	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := r.Group("/api/sla")
	api.GET("/summary", h.getSummary)
	api.GET("/zero-blp", h.getZeroBLP)
	api.GET("/zero-dlp", h.getZeroDLP)
	api.GET("/trend", h.getTrend)
}

func (h *Handler) getDashboard(c *gin.Context) {
	query, err := h.parseDashboardQuery(c)
	if err != nil {
		h.renderPage(c, http.StatusBadRequest, dashboard.ErrorPage(query, err.Error()), metrics.RenderError)
		return
	}

	snapshot, err := h.sla.LoadDashboard(c.Request.Context(), query)
	if err != nil {
		status, message := h.classify(c, err)
		h.renderPage(c, status, dashboard.ErrorPage(snapshot.Query, message), metrics.RenderError)
		return
	}

	result := metrics.RenderOK
	if !snapshot.HasData() {
		result = metrics.RenderNoData
	}
	h.renderPage(c, http.StatusOK, dashboard.Build(snapshot), result)
}

func (h *Handler) getSummary(c *gin.Context) {
	date, err := h.reportDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	summary, err := h.sla.GetDailySummary(c.Request.Context(), date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) getZeroBLP(c *gin.Context) {
	date, err := h.reportDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	meters, err := h.sla.GetZeroBLPMeters(c.Request.Context(), date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(meters))
}

func (h *Handler) getZeroDLP(c *gin.Context) {
	date, err := h.reportDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	meters, err := h.sla.GetZeroDLPMeters(c.Request.Context(), date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(meters))
}

func (h *Handler) getTrend(c *gin.Context) {
	date, err := h.reportDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	rng, err := parseRange(c, "from", "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	points, normalized, err := h.sla.GetTrend(c.Request.Context(), date, rng)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": points, "range": normalized})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) parseDashboardQuery(c *gin.Context) (model.DashboardQuery, error) {
	query := model.DashboardQuery{Drill: model.ParseDrillDown(strings.TrimSpace(c.Query("drill")))}

	date, err := h.reportDate(c)
	if err != nil {
		return query, err
	}
	query.Date = date

	rng, err := parseRange(c, "trend_start", "trend_end")
	if err != nil {
		return query, err
	}
	query.Trend = h.sla.TrendRange(date, rng)

	return query, nil
}

// reportDate reads the date parameter, defaulting to today.
func (h *Handler) reportDate(c *gin.Context) (time.Time, error) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		return time.Time{}, err
	}
	if date.IsZero() {
		y, m, d := h.now().Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return date, nil
}

func parseRange(c *gin.Context, fromKey, toKey string) (model.DateRange, error) {
	from, err := parseDate(c.Query(fromKey))
	if err != nil {
		return model.DateRange{}, err
	}
	to, err := parseDate(c.Query(toKey))
	if err != nil {
		return model.DateRange{}, err
	}
	return model.DateRange{From: from, To: to}, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return parsed, nil
}

func (h *Handler) renderPage(c *gin.Context, status int, page dashboard.Page, result string) {
	h.metrics.ObserveRender(result)
	c.HTML(status, dashboard.TemplateName, page)
}

// classify logs err and returns the status and the message shown to the viewer.
func (h *Handler) classify(c *gin.Context, err error) (int, string) {
	event := h.log.Error().Err(err).Str("request_id", middleware.GetRequestID(c))
	switch {
	case errors.Is(err, repository.ErrConnection):
		event.Msg("sla store unreachable")
		return http.StatusServiceUnavailable, repository.ErrConnection.Error()
	case errors.Is(err, repository.ErrQuery):
		event.Msg("sla query failed")
		return http.StatusInternalServerError, repository.ErrQuery.Error()
	default:
		event.Msg("handler error")
		return http.StatusInternalServerError, "internal error"
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNoData) {
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
		return
	}
	status, message := h.classify(c, err)
	c.JSON(status, errorResponse(message))
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
