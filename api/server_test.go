package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presolar/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Batch.Workers = 2
	cfg.Server.MaxBatchSize = 3
	return NewServer("test", cfg)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestClassify(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/classify",
		`{"grain": {"d29si": [-500, 1], "d30si": [-700, 1]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RequestID     string             `json:"request_id"`
		Type          string             `json:"type"`
		Subtype       string             `json:"subtype"`
		Probabilities map[string]float64 `json:"probabilities"`
	}
	decode(t, rec, &resp)

	assert.Equal(t, "X", resp.Type)
	assert.Equal(t, "X1", resp.Subtype)
	assert.Len(t, resp.Probabilities, 8)
	assert.Equal(t, 1.0, resp.Probabilities["X"])
	assert.True(t, strings.HasPrefix(resp.RequestID, "cls-"))
	assert.Equal(t, resp.RequestID, rec.Header().Get("X-Request-ID"))
}

func TestClassifyNoData(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/classify", `{"grain": {}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Type string `json:"type"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "U", resp.Type)
	assert.Contains(t, rec.Body.String(), `"M":0.000`)
}

func TestClassifyProbabilitiesMode(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/classify",
		`{"grain": {"d29si": [50, 1], "d30si": [50, 1]}, "mode": "probabilities"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Type          string             `json:"type"`
		Probabilities map[string]float64 `json:"probabilities"`
	}
	decode(t, rec, &resp)
	assert.Empty(t, resp.Type)
	require.Len(t, resp.Probabilities, 8)
	for label, p := range resp.Probabilities {
		assert.GreaterOrEqual(t, p, 0.0, label)
		assert.LessOrEqual(t, p, resp.Probabilities["M"], label)
	}
	assert.LessOrEqual(t, resp.Probabilities["M"], 1.0)
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"bad mode", `{"grain": {}, "mode": "both"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed json", `{"grain": `, http.StatusBadRequest, "INVALID_JSON"},
		{"three-entry tuple", `{"grain": {"c12_c13": [1, 2, 3]}}`, http.StatusBadRequest, "INVALID_MEASUREMENT"},
		{"asymmetric silicon", `{"grain": {"d29si": [1, [2, 3]]}}`, http.StatusBadRequest, "INVALID_MEASUREMENT"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/classify", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var resp ErrorResponse
			decode(t, rec, &resp)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestBatch(t *testing.T) {
	body := `{
		"grains": [
			{"id": "a", "d29si": [50, 1], "d30si": [50, 1], "recorded": {"type": "M"}},
			{"d29si": [-900, 1], "d30si": [-700, 1], "recorded": {"type": "X", "subtype": "X1"}},
			{"id": "bad", "d30si": [1, [2, 3]]}
		],
		"probabilities": true,
		"compare": true
	}`
	rec := do(t, newTestServer(t), http.MethodPost, "/classify/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RequestID string `json:"request_id"`
		RunID     string `json:"run_id"`
		Grains    []struct {
			ID            string             `json:"id"`
			Type          string             `json:"type"`
			Subtype       string             `json:"subtype"`
			Probabilities map[string]float64 `json:"probabilities"`
			Match         *bool              `json:"match"`
			Error         string             `json:"error"`
		} `json:"grains"`
		Stats struct {
			Total      int `json:"total"`
			Failed     int `json:"failed"`
			Mismatched int `json:"mismatched"`
		} `json:"stats"`
	}
	decode(t, rec, &resp)

	assert.NotEmpty(t, resp.RunID)
	require.Len(t, resp.Grains, 3)
	assert.Equal(t, "M", resp.Grains[0].Type)
	assert.True(t, *resp.Grains[0].Match)
	assert.Equal(t, "grain-2", resp.Grains[1].ID)
	assert.Equal(t, "X2", resp.Grains[1].Subtype)
	assert.False(t, *resp.Grains[1].Match)
	assert.Contains(t, resp.Grains[2].Error, "INVALID_MEASUREMENT")
	assert.Equal(t, 3, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.Failed)
	assert.Equal(t, 1, resp.Stats.Mismatched)
}

func TestBatchLimits(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/classify/batch", `{"grains": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/classify/batch", `{"grains": [{}, {}, {}, {}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestBodyLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 64
	s := NewServer("test", cfg)

	big := `{"grains": [` + strings.Repeat(`{"d29si": [50, 1]},`, 10) + `{}]}`
	for _, path := range []string{"/classify", "/classify/batch"} {
		rec := do(t, s, http.MethodPost, path, big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, path)

		var resp ErrorResponse
		decode(t, rec, &resp)
		assert.Equal(t, "BODY_TOO_LARGE", resp.Error.Code)
	}

	rec := do(t, s, http.MethodPost, "/classify", `{"grain": {"d29si": [50, 1]}}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

// TestBatchCanceled proves plain errors come back as internal errors
func TestBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/classify/batch",
		strings.NewReader(`{"grains": [{"d29si": [50, 1]}]}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Equal(t, "classification failed", resp.Error.Message)
}

func TestCategories(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Categories     []CategoryInfo `json:"categories"`
		Unclassified   string         `json:"unclassified"`
		MinProbability float64        `json:"min_probability"`
	}
	decode(t, rec, &resp)

	var labels []string
	for _, c := range resp.Categories {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"M", "AB", "Y", "Z", "X", "C", "D", "N"}, labels)
	assert.Equal(t, []string{"X0", "X1", "X2"}, resp.Categories[4].Subtypes)
	assert.Empty(t, resp.Categories[0].Subtypes)
	assert.Equal(t, "U", resp.Unclassified)
	assert.Equal(t, 0.01, resp.MinProbability)
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	rec = do(t, s, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"test"`)
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/classify", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
