package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"newsradar/internal/metrics"
	"newsradar/internal/pipeline"
)

// Analyzer is the slice of the pipeline the handlers need; the concrete
// *pipeline.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, location string, days, resultCap int) []pipeline.Entry
	ScanDanger(ctx context.Context, location string, days, limit int) []pipeline.DangerEntry
}

type locationRequest struct {
	Location string `json:"location"`
	Days     int    `json:"days"`
}

type entryResponse struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Category  string `json:"category"`
	Threat    string `json:"threat"`
}

type dangerResponse struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Danger    string `json:"danger"`
}

type Handler struct {
	analyzer    Analyzer
	defaultDays int
	resultCap   int
}

func NewHandler(analyzer Analyzer, defaultDays, resultCap int) *Handler {
	return &Handler{
		analyzer:    analyzer,
		defaultDays: defaultDays,
		resultCap:   resultCap,
	}
}

func (h *Handler) Analyze(c *gin.Context) {
	location, days, ok := h.bindLocation(c)
	if !ok {
		return
	}

	results := h.analyzer.Analyze(c.Request.Context(), location, days, h.resultCap)

	out := make([]entryResponse, 0, len(results))
	for _, r := range results {
		out = append(out, entryResponse{
			Title:     r.Title,
			Link:      r.Link,
			Published: r.Published.UTC().Format(time.RFC3339),
			Category:  r.Category,
			Threat:    string(r.Threat),
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) Danger(c *gin.Context) {
	location, days, ok := h.bindLocation(c)
	if !ok {
		return
	}

	results := h.analyzer.ScanDanger(c.Request.Context(), location, days, h.resultCap)

	out := make([]dangerResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dangerResponse{
			Title:     r.Title,
			Link:      r.Link,
			Published: r.Published.UTC().Format(time.RFC3339),
			Danger:    string(r.Danger),
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) Health(c *gin.Context) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if healthy, _ := stats["is_healthy"].(bool); !healthy {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Global.GetStats())
}

func (h *Handler) bindLocation(c *gin.Context) (string, int, bool) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return "", 0, false
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return "", 0, false
	}

	days := req.Days
	if days <= 0 {
		days = h.defaultDays
	}

	return location, days, true
}
