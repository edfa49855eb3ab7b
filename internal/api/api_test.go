package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geochem/internal/config"
	"github.com/katalvlaran/geochem/lambdas"
	"github.com/katalvlaran/geochem/ree"
)

func testDefaults() config.ProfileConfig {
	return config.ProfileConfig{
		Degree:        4,
		Domain:        "radii",
		Drop0:         true,
		LinePoints:    1000,
		MaxLinePoints: 5000,
		MaxDegree:     config.DefaultMaxDegree,
	}
}

func newTestServer(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(testDefaults(), m, logger), reg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type plotBody struct {
	Domain string `json:"domain"`
	Series []struct {
		Label string     `json:"label"`
		Kind  string     `json:"kind"`
		X     []*float64 `json:"x"`
		Y     []*float64 `json:"y"`
	} `json:"series"`
	Suppressed int `json:"suppressed"`
}

func TestNullFloats(t *testing.T) {
	b, err := json.Marshal(nullFloats{1.5, math.NaN(), math.Inf(1), 0})
	require.NoError(t, err)
	assert.Equal(t, "[1.5,null,null,0]", string(b))

	b, err = json.Marshal(struct {
		F nullFloats `json:"f"`
	}{})
	require.NoError(t, err)
	assert.Equal(t, `{"f":null}`, string(b))
}

func TestTetradsProfile(t *testing.T) {
	h, reg := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/v1/tetrads/profile", `{"taus":[[1,0,0,0]],"domain":"z"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, err := uuid.Parse(w.Header().Get("X-Plot-ID"))
	assert.NoError(t, err)
	assert.NotEmpty(t, w.Header().Get("ETag"))

	var body plotBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "z", body.Domain)
	require.Len(t, body.Series, 2)
	assert.Equal(t, "markers", body.Series[0].Kind)
	require.Len(t, body.Series[0].Y, 15)
	require.NotNil(t, body.Series[0].Y[0]) // 57 anchor stays a zero
	assert.Zero(t, *body.Series[0].Y[0])
	assert.Nil(t, body.Series[0].Y[4]) // 61 suppressed
	assert.Greater(t, body.Suppressed, 0)

	assert.Equal(t, float64(body.Suppressed), gatherCounter(t, reg, "geochem_suppressed_points_total"))
}

func gatherCounter(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			require.Len(t, f.GetMetric(), 1)
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestTetradsProfile_Errors(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/v1/tetrads/profile", `{"taus":[[1,2,3]]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/tetrads/profile", `{"taus":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/tetrads/profile", `{"taus":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRequestLimits(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/v1/tetrads/profile",
		`{"taus":[[1,1,1,1],[1,1,1,1]],"domain":"radii","line_points":3000000}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "line_points")

	w = do(t, h, http.MethodPost, "/api/v1/tetrads/profile", `{"taus":[[1,1,1,1]],"line_points":5000}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/lambdas/fit", `{"values":[1,2,3],"degree":15}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "degree")

	long := "[" + strings.Repeat("1,", 16) + "1]"
	w = do(t, h, http.MethodPost, "/api/v1/lambdas/profile", `{"lambdas":[`+long+`]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/lambdas/components", `{"lambdas":[1],"degree":20}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	huge := `{"taus":[[1,1,1,1]],"style":{"pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}}`
	w = do(t, h, http.MethodPost, "/api/v1/tetrads/profile", huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestETagNotModified(t *testing.T) {
	h, _ := newTestServer(t)
	body := `{"lambdas":[[1,2,3,4,5]]}`

	first := do(t, h, http.MethodPost, "/api/v1/lambdas/profile", body)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lambdas/profile", strings.NewReader(body))
	req.Header.Set("If-None-Match", etag)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestLambdasProfile(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/v1/lambdas/profile", `{"lambdas":[[1,2,3,4,5],[0,0,0,0,0]]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body plotBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Series, 2)
	assert.Equal(t, "Regression", body.Series[0].Label)
	assert.Len(t, body.Series[0].X, 100)

	w = do(t, h, http.MethodPost, "/api/v1/lambdas/profile", `{"lambdas":[[1,2,3]],"degree":4}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/lambdas/profile", `{"lambdas":[[1,2]],"params":[[],[1.05]]}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLambdaComponents(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/v1/lambdas/components", `{"lambdas":[1,2,3],"domain":"elements"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body plotBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "elements", body.Domain)
	require.Len(t, body.Series, 4)
	assert.Equal(t, "r^2: λ2·f2", body.Series[3].Label)
}

func TestFit(t *testing.T) {
	h, _ := newTestServer(t)

	params, err := lambdas.DefaultParams(2)
	require.NoError(t, err)
	f, err := lambdas.Reconstruct([]float64{1.5, -4, 20}, params)
	require.NoError(t, err)
	ys := f.Evaluate(ree.DefaultRadii())
	values := make([]*float64, len(ys))
	for i := range ys {
		values[i] = &ys[i]
	}
	values[2] = nil
	payload, err := json.Marshal(map[string]interface{}{"values": values, "degree": 2})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lambdas/fit", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp fitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Lambdas, 3)
	assert.InDelta(t, 1.5, resp.Lambdas[0], 1e-8)
	assert.InDelta(t, -4, resp.Lambdas[1], 1e-6)
	assert.InDelta(t, 20, resp.Lambdas[2], 1e-4)
	require.Len(t, resp.Params, 3)
	assert.Len(t, resp.Params[2], 2)

	w = do(t, h, http.MethodPost, "/api/v1/lambdas/fit", `{"values":[1,2],"degree":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestElements(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/v1/ree", "")
	require.Equal(t, http.StatusOK, w.Code)
	var els []elementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &els))
	require.Len(t, els, 14)
	assert.Equal(t, elementResponse{Symbol: "La", Z: 57, Radius: 1.16}, els[0])

	w = do(t, h, http.MethodGet, "/api/v1/ree?pm=true", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &els))
	assert.Len(t, els, 15)

	w = do(t, h, http.MethodGet, "/api/v1/ree?pm=perhaps", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComp(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/v1/comp/clr", `{"rows":[[1,1,1],[1,2,4]]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rows rowsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows.Rows, 2)
	assert.InDelta(t, 0, rows.Rows[0][0], 1e-15)
	assert.InDelta(t, -math.Ln2, rows.Rows[1][0], 1e-12)

	w = do(t, h, http.MethodPost, "/api/v1/comp/ilr", `{"rows":[[1,2,4]]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows.Rows[0], 2)

	w = do(t, h, http.MethodPost, "/api/v1/comp/mean", `{"rows":[[1,1,2],[4,1,2]]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var mean meanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mean))
	assert.InDeltaSlice(t, []float64{0.4, 0.2, 0.4}, mean.Mean, 1e-12)

	w = do(t, h, http.MethodPost, "/api/v1/comp/clr", `{"rows":[[1,0]]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/comp/clr", `{"rows":[[1,2],[3]]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMetricsRouter(t *testing.T) {
	h, reg := newTestServer(t)
	do(t, h, http.MethodGet, "/api/v1/ree", "")

	mr := NewMetricsRouter(reg)
	w := do(t, mr, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)

	w = do(t, mr, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `geochem_http_requests_total{route="/api/v1/ree",status="200"} 1`)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "/x", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
}
