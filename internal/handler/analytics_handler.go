package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tradelens/internal/ingest"
	"github.com/tradelens/internal/metrics"
	"github.com/tradelens/internal/middleware"
	"github.com/tradelens/internal/models"
	"github.com/tradelens/internal/service"
	"github.com/tradelens/pkg/response"
)

// AnalyticsHandler serves dataset uploads and derived analytics views
type AnalyticsHandler struct {
	datasets      *service.DatasetService
	maxUploadSize int64 // bytes
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(datasets *service.DatasetService, maxUploadSize int64) *AnalyticsHandler {
	return &AnalyticsHandler{
		datasets:      datasets,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes registers dataset and analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	datasets := rg.Group("/datasets")
	{
		datasets.POST("", h.Upload)
		datasets.GET("", h.List)
		datasets.GET("/:id", h.GetDataset)
		datasets.DELETE("/:id", h.Delete)
		datasets.GET("/:id/overview", h.Overview)
		datasets.GET("/:id/summary", h.Summary)
		datasets.GET("/:id/calendar", h.Calendar)
		datasets.GET("/:id/distribution", h.Distribution)
		datasets.GET("/:id/trades", h.Trades)
	}
}

// UploadReport tells the caller what happened to each rejected row
type UploadReport struct {
	RowCount int               `json:"row_count"`
	Accepted int               `json:"accepted"`
	Skipped  []ingest.RowError `json:"skipped,omitempty"`
}

// Upload ingests a CSV trade export and registers it as a dataset
// POST /api/v1/datasets
func (h *AnalyticsHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file field in multipart form")
		return
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		response.BadRequest(c, "file exceeds upload size limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "failed to open uploaded file")
		return
	}
	defer f.Close()

	res, err := ingest.ParseCSV(f)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrEmptyFile), errors.Is(err, ingest.ErrMissingColumns):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ingest.ErrNoValidRows):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err.Error())
		}
		return
	}

	metrics.RowsIngested.Add(float64(len(res.Trades)))
	metrics.RowsRejected.Add(float64(len(res.Skipped)))

	ds := h.datasets.Register(fileHeader.Filename, res.Trades)
	middleware.LogInfo("dataset %s registered: %d trades, %d rows skipped",
		ds.ID, len(res.Trades), len(res.Skipped))

	ov, err := h.datasets.Overview(c.Request.Context(), ds.ID, models.DateRange{})
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Created(c, gin.H{
		"dataset": ds,
		"report": UploadReport{
			RowCount: res.RowCount,
			Accepted: len(res.Trades),
			Skipped:  res.Skipped,
		},
		"overview": ov,
	})
}

// List returns all registered datasets
// GET /api/v1/datasets
func (h *AnalyticsHandler) List(c *gin.Context) {
	response.Success(c, h.datasets.List())
}

// GetDataset returns dataset metadata
// GET /api/v1/datasets/:id
func (h *AnalyticsHandler) GetDataset(c *gin.Context) {
	ds, err := h.datasets.Get(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, ds)
}

// Delete removes a dataset
// DELETE /api/v1/datasets/:id
func (h *AnalyticsHandler) Delete(c *gin.Context) {
	if err := h.datasets.Delete(c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": c.Param("id")})
}

// Overview returns every derived view for the requested date range
// GET /api/v1/datasets/:id/overview?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	ov, err := h.datasets.Overview(c.Request.Context(), c.Param("id"), r)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, ov)
}

// Summary returns the headline statistics for the requested date range
// GET /api/v1/datasets/:id/summary?start&end
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	ov, err := h.datasets.Overview(c.Request.Context(), c.Param("id"), r)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"summary":   ov.Summary,
		"day_stats": ov.DayStats,
		"direction": ov.Direction,
	})
}

// Calendar returns the month grid with weekly totals
// GET /api/v1/datasets/:id/calendar?year=2024&month=2&start&end
func (h *AnalyticsHandler) Calendar(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))
	month, _ := strconv.Atoi(c.DefaultQuery("month", "0"))

	grid, err := h.datasets.Calendar(c.Param("id"), r, year, month)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, grid)
}

// Distribution returns the duration distribution bands
// GET /api/v1/datasets/:id/distribution?start&end
func (h *AnalyticsHandler) Distribution(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	ov, err := h.datasets.Overview(c.Request.Context(), c.Param("id"), r)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, ov.Distribution)
}

// Trades returns one page of the filtered, sorted trade list
// GET /api/v1/datasets/:id/trades?start&end&sort_by=pnl&order=desc&page=1&page_size=50
func (h *AnalyticsHandler) Trades(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	sortBy := c.Query("sort_by")
	order := c.DefaultQuery("order", "asc")

	trades, total, err := h.datasets.Trades(c.Param("id"), r, sortBy, order, page, pageSize)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	response.SuccessPaginated(c, trades, total, page, pageSize)
}

// dateRange parses the optional start/end query bounds. Bounds must be
// ISO dates; anything else is a 400.
func (h *AnalyticsHandler) dateRange(c *gin.Context) (models.DateRange, bool) {
	r := models.DateRange{Start: c.Query("start"), End: c.Query("end")}
	for _, bound := range []string{r.Start, r.End} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", bound); err != nil {
			response.BadRequest(c, "invalid date bound: "+bound+" (want YYYY-MM-DD)")
			return models.DateRange{}, false
		}
	}
	return r, true
}

func (h *AnalyticsHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDatasetNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
