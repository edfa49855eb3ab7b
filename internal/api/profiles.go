package api

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/katalvlaran/geochem/internal/config"
	"github.com/katalvlaran/geochem/lambdas"
	"github.com/katalvlaran/geochem/profile"
	"github.com/katalvlaran/geochem/ree"
)

type ProfileHandler struct {
	defaults config.ProfileConfig
	metrics  *Metrics
	logger   *slog.Logger
}

func NewProfileHandler(pc config.ProfileConfig, m *Metrics, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{defaults: pc, metrics: m, logger: logger}
}

// plotOptions are the per-request overrides shared by the plot endpoints.
type plotOptions struct {
	Domain     *string           `json:"domain"`
	Drop0      *bool             `json:"drop0"`
	LogY       bool              `json:"logy"`
	IncludePm  *bool             `json:"include_pm"`
	LinePoints int               `json:"line_points"`
	Style      map[string]string `json:"style"`
}

func (h *ProfileHandler) plotConfig(o plotOptions, r *http.Request) (profile.Config, error) {
	if o.LinePoints > h.defaults.MaxLinePoints {
		return profile.Config{}, fmt.Errorf("line_points %d above limit %d: %w", o.LinePoints, h.defaults.MaxLinePoints, errBadRequest)
	}
	cfg := profile.Config{
		Domain:     profile.ParseDomain(h.defaults.Domain),
		Drop0:      h.defaults.Drop0,
		LogY:       o.LogY,
		IncludePm:  h.defaults.IncludePm,
		LinePoints: h.defaults.LinePoints,
		Style:      o.Style,
		Logger:     h.logger.With("request_id", requestID(r)),
	}
	if o.Domain != nil {
		cfg.Domain = profile.ParseDomain(*o.Domain)
	}
	if o.Drop0 != nil {
		cfg.Drop0 = *o.Drop0
	}
	if o.IncludePm != nil {
		cfg.IncludePm = *o.IncludePm
	}
	if o.LinePoints > 0 {
		cfg.LinePoints = o.LinePoints
	}
	return cfg, nil
}

func (h *ProfileHandler) checkDegree(degree int) error {
	if degree > h.defaults.MaxDegree {
		return fmt.Errorf("degree %d above limit %d: %w", degree, h.defaults.MaxDegree, errBadRequest)
	}
	return nil
}

// basis resolves explicit params, an explicit degree, or nil (derived from the
// lambda vector length). n is the longest lambda vector of the request.
func (h *ProfileHandler) basis(params [][]float64, degree *int, n int) (lambdas.Params, error) {
	switch {
	case params != nil:
		if err := h.checkDegree(len(params) - 1); err != nil {
			return nil, err
		}
		out := make(lambdas.Params, len(params))
		for i, p := range params {
			out[i] = append(lambdas.Term{}, p...)
		}
		return out, nil
	case degree != nil:
		if err := h.checkDegree(*degree); err != nil {
			return nil, err
		}
		return lambdas.DefaultParams(*degree)
	default:
		return nil, h.checkDegree(n - 1)
	}
}

func (h *ProfileHandler) writePlot(w http.ResponseWriter, r *http.Request, p *profile.Plot) {
	h.metrics.AddSuppressed(p.Suppressed)
	w.Header().Set("X-Plot-ID", uuid.NewString())
	writeJSON(w, r, http.StatusOK, newPlotResponse(p))
}

type tetradsRequest struct {
	Taus [][]float64 `json:"taus"`
	plotOptions
}

func (h *ProfileHandler) Tetrads(w http.ResponseWriter, r *http.Request) {
	var req tetradsRequest
	if !decode(w, r, &req) {
		return
	}
	cfg, err := h.plotConfig(req.plotOptions, r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	p, err := profile.Tetrads(req.Taus, cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.writePlot(w, r, p)
}

type lambdasRequest struct {
	Lambdas [][]float64 `json:"lambdas"`
	Degree  *int        `json:"degree"`
	Params  [][]float64 `json:"params"`
	plotOptions
}

func (h *ProfileHandler) Lambdas(w http.ResponseWriter, r *http.Request) {
	var req lambdasRequest
	if !decode(w, r, &req) {
		return
	}
	n := 0
	for _, row := range req.Lambdas {
		n = max(n, len(row))
	}
	params, err := h.basis(req.Params, req.Degree, n)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	cfg, err := h.plotConfig(req.plotOptions, r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	p, err := profile.Lambdas(req.Lambdas, params, cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.writePlot(w, r, p)
}

type componentsRequest struct {
	Lambdas []float64   `json:"lambdas"`
	Degree  *int        `json:"degree"`
	Params  [][]float64 `json:"params"`
	plotOptions
}

func (h *ProfileHandler) LambdaComponents(w http.ResponseWriter, r *http.Request) {
	var req componentsRequest
	if !decode(w, r, &req) {
		return
	}
	params, err := h.basis(req.Params, req.Degree, len(req.Lambdas))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	cfg, err := h.plotConfig(req.plotOptions, r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	p, err := profile.LambdaComponents(req.Lambdas, params, cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.writePlot(w, r, p)
}

type fitRequest struct {
	Radii  []float64  `json:"radii"`
	Values []*float64 `json:"values"` // null marks a missing element
	Degree *int       `json:"degree"`
}

type fitResponse struct {
	Lambdas []float64   `json:"lambdas"`
	Params  [][]float64 `json:"params"`
}

func (h *ProfileHandler) Fit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if !decode(w, r, &req) {
		return
	}
	radii := req.Radii
	if radii == nil {
		radii = ree.DefaultRadii()
	}
	degree := h.defaults.Degree
	if req.Degree != nil {
		degree = *req.Degree
	}
	if err := h.checkDegree(degree); err != nil {
		writeDomainError(w, r, err)
		return
	}
	ys := make([]float64, len(req.Values))
	for i, v := range req.Values {
		ys[i] = math.NaN()
		if v != nil {
			ys[i] = *v
		}
	}
	params, err := lambdas.OrthogonalParams(radii, degree)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	ls, err := lambdas.Fit(radii, ys, params)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	resp := fitResponse{Lambdas: ls, Params: make([][]float64, len(params))}
	for i, t := range params {
		resp.Params[i] = append([]float64{}, t...)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

type elementResponse struct {
	Symbol string  `json:"symbol"`
	Z      int     `json:"z"`
	Radius float64 `json:"radius"`
}

// Elements lists the REE with their 3+ CN VIII radii; ?pm=true keeps Pm.
func (h *ProfileHandler) Elements(w http.ResponseWriter, r *http.Request) {
	includePm := h.defaults.IncludePm
	if v := r.URL.Query().Get("pm"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid pm %q", v))
			return
		}
		includePm = b
	}
	els := ree.REE(ree.WithPm(includePm))
	radii, err := ree.Radii(els, ree.DefaultCharge, ree.DefaultCoordination)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]elementResponse, len(els))
	for i, e := range els {
		out[i] = elementResponse{Symbol: e.Symbol, Z: e.Z, Radius: radii[i]}
	}
	writeJSON(w, r, http.StatusOK, out)
}
