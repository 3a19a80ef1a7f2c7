package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc, dimensions int) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := New(Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		Model:      "intfloat/e5-small-v2",
		Dimensions: dimensions,
	})
	require.NoError(t, err)
	return svc
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewModelDimensions(t *testing.T) {
	svc, err := New(Config{APIKey: "k", Model: "intfloat/e5-large-v2"})
	require.NoError(t, err)
	assert.Equal(t, 1024, svc.Dimensions())

	// Unknown models default to 768.
	svc, err = New(Config{APIKey: "k", Model: "some/other-model"})
	require.NoError(t, err)
	assert.Equal(t, 768, svc.Dimensions())
}

func TestEmbedBatchRolePrefixes(t *testing.T) {
	var gotReq featureRequest
	var gotAuth string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode([][]float64{{1, 0, 0}, {0, 1, 0}})
	}, 3)

	vecs, err := svc.EmbedBatch(context.Background(), []string{"first clause", "second clause"}, driven.RolePassage)
	require.NoError(t, err)
	require.Len(t, vecs, 2)

	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotReq.Inputs, 2)
	assert.Equal(t, "passage: first clause", gotReq.Inputs[0])
	assert.Equal(t, "passage: second clause", gotReq.Inputs[1])
	assert.Equal(t, true, gotReq.Options["wait_for_model"])
}

func TestEmbedQueryPrefix(t *testing.T) {
	var gotReq featureRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode([][]float64{{1, 0, 0}})
	}, 3)

	_, err := svc.Embed(context.Background(), "is it covered?", driven.RoleQuery)
	require.NoError(t, err)
	require.Len(t, gotReq.Inputs, 1)
	assert.Equal(t, "query: is it covered?", gotReq.Inputs[0])
}

func TestEmbedBatchDimensionValidation(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([][]float64{{1, 0}})
	}, 3)

	_, err := svc.EmbedBatch(context.Background(), []string{"x"}, driven.RolePassage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimensions")
}

func TestEmbedBatchCountValidation(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([][]float64{{1, 0, 0}})
	}, 3)

	_, err := svc.EmbedBatch(context.Background(), []string{"a", "b"}, driven.RolePassage)
	assert.Error(t, err)
}

func TestEmbedBatchServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model loading"}`, http.StatusServiceUnavailable)
	}, 3)

	_, err := svc.EmbedBatch(context.Background(), []string{"x"}, driven.RolePassage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestEmbedBatchEmptyInput(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty input")
	}, 3)

	vecs, err := svc.EmbedBatch(context.Background(), nil, driven.RolePassage)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}
