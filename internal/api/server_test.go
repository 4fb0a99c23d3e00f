package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/coverage-mapper/core"
	"github.com/signalsfoundry/coverage-mapper/internal/materials"
	"github.com/signalsfoundry/coverage-mapper/model"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := core.NewEngine(nil, materials.NewDefaultTable(), nil)
	return NewServer(engine, nil, nil).Router()
}

func validRequest() map[string]any {
	return map[string]any{
		"bounds": map[string]float64{
			"swLat": 40.0, "swLng": -74.0,
			"neLat": 40.0005, "neLng": -73.9994,
		},
		"band":             "5",
		"resolutionMeters": 2.0,
		"activeFloor":      0,
		"accessPoints": []map[string]any{
			{
				"latitude":       40.00025,
				"longitude":      -73.9997,
				"floor":          0,
				"txPowerDbm":     20,
				"antennaGainDbi": 3,
				"model":          "AP-PRO",
			},
		},
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHeatmapEndpointReturnsGrid(t *testing.T) {
	router := testRouter(t)

	rr := postJSON(t, router, "/api/v1/heatmap", validRequest())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var grid model.HeatmapGrid
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))
	assert.Equal(t, grid.Width*grid.Height, len(grid.Data))
	assert.GreaterOrEqual(t, grid.Width, 1)
	assert.GreaterOrEqual(t, grid.Height, 1)
	assert.LessOrEqual(t, grid.Width, model.MaxGridDimension)
	assert.LessOrEqual(t, grid.Height, model.MaxGridDimension)

	// One AP present: every cell must carry a real value, not the
	// empty-request sentinel.
	for _, v := range grid.Data {
		assert.Greater(t, v, float64(-200))
	}
}

func TestHeatmapEndpointEchoesRequestID(t *testing.T) {
	router := testRouter(t)

	raw, err := json.Marshal(validRequest())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/heatmap", bytes.NewReader(raw))
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
}

func TestHeatmapEndpointRejectsBadInput(t *testing.T) {
	router := testRouter(t)

	cases := []struct {
		name   string
		mutate func(req map[string]any)
	}{
		{"unknown band", func(req map[string]any) { req["band"] = "fm" }},
		{"zero resolution", func(req map[string]any) { req["resolutionMeters"] = 0.0 }},
		{"negative resolution", func(req map[string]any) { req["resolutionMeters"] = -1.0 }},
		{"inverted bounds", func(req map[string]any) {
			req["bounds"] = map[string]float64{"swLat": 41, "swLng": -74, "neLat": 40, "neLng": -73.999}
		}},
		{"bad mount type", func(req map[string]any) {
			aps := req["accessPoints"].([]map[string]any)
			aps[0]["mountType"] = "chandelier"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			rr := postJSON(t, router, "/api/v1/heatmap", req)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestHeatmapEndpointRejectsMalformedBody(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/heatmap", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHeatmapEndpointAllowsEmptyAPList(t *testing.T) {
	router := testRouter(t)

	req := validRequest()
	req["accessPoints"] = []map[string]any{}
	rr := postJSON(t, router, "/api/v1/heatmap", req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var grid model.HeatmapGrid
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))
	for _, v := range grid.Data {
		assert.Equal(t, model.NoSignalDbm, v)
	}
}

func TestRenderEndpointReturnsPNG(t *testing.T) {
	router := testRouter(t)

	rr := postJSON(t, router, "/api/v1/heatmap/render", validRequest())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	_, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
}

func TestHealthz(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
