package api

import (
	"fmt"
	"net/http"

	"github.com/katalvlaran/geochem/comp"
	"github.com/katalvlaran/geochem/matrix"
)

type CompHandler struct{}

func NewCompHandler() *CompHandler { return &CompHandler{} }

type rowsRequest struct {
	Rows [][]float64 `json:"rows"`
}

type rowsResponse struct {
	Rows [][]float64 `json:"rows"`
}

type meanResponse struct {
	Mean []float64 `json:"mean"`
}

func decodeRows(w http.ResponseWriter, r *http.Request) (*matrix.Dense, bool) {
	var req rowsRequest
	if !decode(w, r, &req) {
		return nil, false
	}
	X, err := matrix.NewDenseRows(req.Rows)
	if err != nil {
		writeDomainError(w, r, fmt.Errorf("rows: %v: %w", err, errBadRequest))
		return nil, false
	}
	return X, true
}

func (h *CompHandler) transform(w http.ResponseWriter, r *http.Request, fn func(matrix.Matrix) (*matrix.Dense, error)) {
	X, ok := decodeRows(w, r)
	if !ok {
		return
	}
	out, err := fn(X)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rowsResponse{Rows: out.RowSlices()})
}

func (h *CompHandler) CLR(w http.ResponseWriter, r *http.Request) { h.transform(w, r, comp.CLR) }

func (h *CompHandler) ILR(w http.ResponseWriter, r *http.Request) { h.transform(w, r, comp.ILR) }

func (h *CompHandler) Mean(w http.ResponseWriter, r *http.Request) {
	X, ok := decodeRows(w, r)
	if !ok {
		return
	}
	mean, err := comp.LogRatioMean(X)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, meanResponse{Mean: mean})
}
