package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/transito-cc/backend-go/internal/domain"
	"github.com/transito-cc/backend-go/internal/service"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// parseWindow reads from/to query params. Defaults: first day of the
// current month through today.
func (h *ReportHandler) parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from date is after to date"})
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}

func (h *ReportHandler) parseFilter(c *gin.Context) domain.ReportFilter {
	return domain.ReportFilter{
		Origin:     strings.TrimSpace(c.Query("origin")),
		Supervisor: strings.TrimSpace(c.Query("supervisor")),
		Executive:  strings.TrimSpace(c.Query("executive")),
		Month:      strings.TrimSpace(c.Query("month")),
	}
}

// parseRef reads the no-sale reference date, defaulting to the window
// end (the source reports use the "current" month of the dashboard).
func (h *ReportHandler) parseRef(c *gin.Context, fallback time.Time) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("ref"))
	if raw == "" {
		return fallback, true
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ref date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}
	ref, ok := h.parseRef(c, to)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), from, to, h.parseFilter(c), ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) GetDeliveries(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	deliveries, err := h.service.Deliveries(c.Request.Context(), from, to, h.parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deliveries", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deliveries": deliveries,
		"total":      len(deliveries),
	})
}

func (h *ReportHandler) GetNoSale(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}
	ref, ok := h.parseRef(c, to)
	if !ok {
		return
	}

	records, err := h.service.NoSale(c.Request.Context(), from, to, ref, strings.TrimSpace(c.Query("supervisor")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute no-sale set", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"no_sale": records,
		"total":   len(records),
	})
}

func (h *ReportHandler) GetDetail(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	rows, err := h.service.Detail(c.Request.Context(), from, to, h.parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build detail", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (h *ReportHandler) GetWeekly(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	weeks, err := h.service.Weekly(c.Request.Context(), from, to, h.parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build weekly counts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"weeks": weeks})
}

func (h *ReportHandler) GetTopExecutives(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if limit <= 0 {
		limit = 30
	}

	execs, err := h.service.TopExecutives(c.Request.Context(), from, to, h.parseFilter(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build top executives", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"executives": execs})
}

func (h *ReportHandler) GetBackOffice(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	byDate, byHour, err := h.service.BackOffice(c.Request.Context(), from, to, h.parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build back-office counts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"by_date": byDate, "by_hour": byHour})
}

func (h *ReportHandler) GetCancelled(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	byDate, byHour, err := h.service.Cancelled(c.Request.Context(), from, to, h.parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build cancelled counts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"by_date": byDate, "by_hour": byHour})
}

func (h *ReportHandler) GetFilterOptions(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}

	opts, err := h.service.FilterOptions(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch filter options", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, opts)
}
