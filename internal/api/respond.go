package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/katalvlaran/geochem/comp"
	"github.com/katalvlaran/geochem/lambdas"
	"github.com/katalvlaran/geochem/profile"
	"github.com/katalvlaran/geochem/ree"
	"github.com/katalvlaran/geochem/tetrads"
)

// nullFloats encodes NaN and ±Inf as JSON null ("no value").
type nullFloats []float64

func (f nullFloats) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	b := make([]byte, 0, 2+len(f)*8)
	b = append(b, '[')
	for i, v := range f {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	return append(b, ']'), nil
}

// writeJSON encodes v with a strong blake3 ETag and answers 304 when the
// client already holds that representation.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	sum := blake3.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	if status == http.StatusOK && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// unprocessable lists the domain errors answered with 422.
var unprocessable = []error{
	lambdas.ErrShapeMismatch, lambdas.ErrBadDegree, lambdas.ErrUnderdetermined, lambdas.ErrEmptyInput,
	tetrads.ErrShapeMismatch, tetrads.ErrEmptyInput, tetrads.ErrBadTetrad,
	profile.ErrEmptyInput,
	ree.ErrDomain, ree.ErrUnknownElement, ree.ErrUnknownIon,
	comp.ErrNonPositive, comp.ErrEmptyInput, comp.ErrShapeMismatch, comp.ErrBadIndex,
	errBadRequest,
}

var errBadRequest = errors.New("api: invalid request")

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, target := range unprocessable {
		if errors.Is(err, target) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	writeError(w, r, http.StatusInternalServerError, err.Error())
}

type seriesResponse struct {
	Label string            `json:"label"`
	Kind  profile.Kind      `json:"kind"`
	X     nullFloats        `json:"x"`
	Y     nullFloats        `json:"y"`
	Style map[string]string `json:"style,omitempty"`
}

type plotResponse struct {
	Domain     profile.Domain   `json:"domain"`
	XAxis      profile.Axis     `json:"x_axis"`
	YAxis      profile.Axis     `json:"y_axis"`
	Series     []seriesResponse `json:"series"`
	Suppressed int              `json:"suppressed"`
}

func newPlotResponse(p *profile.Plot) plotResponse {
	out := plotResponse{
		Domain:     p.Domain,
		XAxis:      p.XAxis,
		YAxis:      p.YAxis,
		Series:     make([]seriesResponse, len(p.Series)),
		Suppressed: p.Suppressed,
	}
	for i, s := range p.Series {
		out.Series[i] = seriesResponse{
			Label: s.Label,
			Kind:  s.Kind,
			X:     nullFloats(s.X),
			Y:     nullFloats(s.Y),
			Style: s.Style,
		}
	}
	return out
}

// decode reads the JSON body into v. A body over the router limit gets 413,
// anything else malformed gets 400.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body above %d bytes", tooLarge.Limit))
		return false
	}
	writeError(w, r, http.StatusBadRequest, "invalid request body")
	return false
}
