package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellsgz/perfreport/internal/apperrors"
	"github.com/wellsgz/perfreport/internal/collector"
	"github.com/wellsgz/perfreport/internal/netlog"
	"github.com/wellsgz/perfreport/internal/report"
	"github.com/wellsgz/perfreport/internal/stability"
)

// Handler holds dependencies for API handlers
type Handler struct {
	collector *collector.Collector
	startTime time.Time
}

// NewHandler creates a new Handler reading artifacts through c
func NewHandler(c *collector.Collector) *Handler {
	return &Handler{
		collector: c,
		startTime: time.Now(),
	}
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// StatusResponse represents the response for the status endpoint
type StatusResponse struct {
	Status     string  `json:"status"`
	Uptime     string  `json:"uptime"`
	UptimeSecs float64 `json:"uptime_secs"`
	Layout     string  `json:"layout"`
}

// GetStatus returns the server status and the scanned layout
func (h *Handler) GetStatus(c *gin.Context) {
	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, StatusResponse{
		Status:     "ok",
		Uptime:     uptime.Round(time.Second).String(),
		UptimeSecs: uptime.Seconds(),
		Layout:     h.collector.Layout().String(),
	})
}

// GetReport returns the text report over the newest artifacts
func (h *Handler) GetReport(c *gin.Context) {
	c.String(http.StatusOK, h.collector.Report())
}

// StabilityResponse wraps the stability analysis with its source file
type StabilityResponse struct {
	File     string              `json:"file"`
	Analysis *stability.Analysis `json:"analysis"`
}

// GetStability returns the analysis of the newest metrics file
func (h *Handler) GetStability(c *gin.Context) {
	analysis, path, err := h.collector.Stability()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, StabilityResponse{File: filepath.Base(path), Analysis: analysis})
}

// NetworkResponse wraps the network analysis with its source file
type NetworkResponse struct {
	File     string           `json:"file"`
	Analysis *netlog.Analysis `json:"analysis"`
}

// GetNetwork returns the analysis of the newest network test log
func (h *Handler) GetNetwork(c *gin.Context) {
	analysis, path, err := h.collector.Network()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NetworkResponse{File: filepath.Base(path), Analysis: analysis})
}

// SummaryResponse holds the executive summary. Summary is nil unless both
// inputs were discovered.
type SummaryResponse struct {
	Sources  report.Sources  `json:"sources"`
	Complete bool            `json:"complete"`
	Summary  *report.Summary `json:"summary"`
}

// GetSummary returns the executive summary scores
func (h *Handler) GetSummary(c *gin.Context) {
	in := h.collector.Collect()

	response := SummaryResponse{Sources: in.Sources}
	if summary, ok := report.Summarize(in); ok {
		response.Complete = true
		response.Summary = &summary
	}
	c.JSON(http.StatusOK, response)
}

// statusFor maps an input failure to an HTTP status
func statusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.EmptyData, apperrors.ParseError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Kind:    string(apperrors.KindOf(err)),
		Message: err.Error(),
	})
}
