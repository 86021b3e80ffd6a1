package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"flip-mcp/internal/analysis"
	"flip-mcp/internal/calculator"
	"flip-mcp/internal/comps"
	"flip-mcp/internal/config"
	"flip-mcp/internal/metrics"
	"flip-mcp/internal/stats"
)

// Handler serves the analysis endpoints.
type Handler struct {
	cfg *config.AppConfig
	now func() time.Time
}

// NewHandler creates a handler. now supplies the clock used to age comps.
func NewHandler(cfg *config.AppConfig, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{cfg: cfg, now: now}
}

// CompsRequest carries a comp set.
type CompsRequest struct {
	Comps []comps.ComparableSale `json:"comps"`
}

// ArvRequest carries the inputs of an ARV estimate.
type ArvRequest struct {
	Comps       []comps.ComparableSale `json:"comps"`
	SubjectSqft float64                `json:"subjectSqft"`
	Mode        string                 `json:"mode"`
}

// ArvResponse is the estimated ARV.
type ArvResponse struct {
	Arv          float64        `json:"arv"`
	Mode         stats.StatMode `json:"mode"`
	PricePerSqft float64        `json:"pricePerSqft"`
	Count        int            `json:"count"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handler) normalize(sales []comps.ComparableSale) ([]comps.ComparableSale, error) {
	now := h.now()
	out := make([]comps.ComparableSale, len(sales))
	for i, s := range sales {
		if err := s.Normalize(now); err != nil {
			return nil, err
		}
		out[i] = s
	}
	metrics.CompsAnalyzedTotal.Add(float64(len(out)))
	return out, nil
}

func (h *Handler) bindComps(c *gin.Context, sales *[]comps.ComparableSale) bool {
	normalized, err := h.normalize(*sales)
	if err != nil {
		badRequest(c, err)
		return false
	}
	*sales = normalized
	return true
}

// GetDefaults returns the configured calculator assumptions and modes.
func (h *Handler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"inputs":     calculator.ParamsFrom(h.cfg.Defaults),
		"statMode":   h.cfg.StatMode,
		"bucketMode": h.cfg.BucketMode,
		"filters":    comps.DefaultFilters(),
	})
}

// ComputeStats returns aggregate statistics over the active comps.
func (h *Handler) ComputeStats(c *gin.Context) {
	var req CompsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.bindComps(c, &req.Comps) {
		return
	}
	c.JSON(http.StatusOK, stats.ComputeAggregateStatistics(req.Comps))
}

// BuildBuckets returns the five time buckets. The mode query parameter
// selects exclusive (default) or cumulative windows.
func (h *Handler) BuildBuckets(c *gin.Context) {
	mode, err := stats.ParseBucketMode(c.DefaultQuery("mode", string(h.cfg.BucketMode)))
	if err != nil {
		badRequest(c, err)
		return
	}
	var req CompsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.bindComps(c, &req.Comps) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":    mode,
		"buckets": stats.BuildTimeBuckets(req.Comps, mode),
	})
}

// ComputeArv estimates the ARV of a subject from comps.
func (h *Handler) ComputeArv(c *gin.Context) {
	var req ArvRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Mode == "" {
		req.Mode = string(h.cfg.StatMode)
	}
	mode, err := stats.ParseStatMode(req.Mode)
	if err != nil {
		badRequest(c, err)
		return
	}
	if req.SubjectSqft < 0 {
		badRequest(c, fmt.Errorf("subjectSqft must not be negative, got %v", req.SubjectSqft))
		return
	}
	if !h.bindComps(c, &req.Comps) {
		return
	}

	agg := stats.ComputeAggregateStatistics(req.Comps)
	arv := stats.ComputeArv(req.Comps, req.SubjectSqft, mode)
	metrics.LastArvDollars.Set(arv)
	c.JSON(http.StatusOK, ArvResponse{
		Arv:          arv,
		Mode:         mode,
		PricePerSqft: agg.PricePerSqft(mode),
		Count:        agg.Count,
	})
}

// CalculateMaxOffer solves the offer. Fields left out of the body take the
// configured defaults.
func (h *Handler) CalculateMaxOffer(c *gin.Context) {
	params := calculator.ParamsFrom(h.cfg.Defaults)
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}
	in := params.Inputs()
	if err := in.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	metrics.MaxOfferCalculationsTotal.Inc()
	c.JSON(http.StatusOK, calculator.CalculateMaxOffer(in))
}

// AnalyzeDeal runs the full pipeline on a deal.
func (h *Handler) AnalyzeDeal(c *gin.Context) {
	var deal analysis.Deal
	if err := c.ShouldBindJSON(&deal); err != nil {
		badRequest(c, err)
		return
	}
	deal = deal.WithModeDefaults(h.cfg.StatMode, h.cfg.BucketMode)

	w, err := deal.Workspace(h.cfg.Defaults, h.now())
	if err != nil {
		if errors.Is(err, comps.ErrInvalidRecord) {
			log.Debug().Err(err).Msg("Rejected deal with invalid comp")
		}
		badRequest(c, err)
		return
	}

	report := w.Build()
	metrics.CompsAnalyzedTotal.Add(float64(len(report.Comps)))
	metrics.MaxOfferCalculationsTotal.Inc()
	metrics.LastArvDollars.Set(report.Arv)
	c.JSON(http.StatusOK, report)
}
