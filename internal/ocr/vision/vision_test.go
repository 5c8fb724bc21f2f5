package vision_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkference/internal/config"
	"inkference/internal/domain"
	"inkference/internal/ocr/vision"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *vision.Extractor) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	e := vision.NewExtractorWithEndpoint(&config.OCRConfig{APIKey: "test-key"}, server.URL)
	return server, e
}

func TestExtractText_Success(t *testing.T) {
	var captured map[string]interface{}
	_, e := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"RECEIPT\nTotal 9.50"}}]}`))
	})

	text, err := e.ExtractText(context.Background(), []byte("image bytes"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "RECEIPT\nTotal 9.50", text)

	requests := captured["requests"].([]interface{})
	req := requests[0].(map[string]interface{})
	img := req["image"].(map[string]interface{})
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("image bytes")), img["content"])
	features := req["features"].([]interface{})
	assert.Equal(t, "TEXT_DETECTION", features[0].(map[string]interface{})["type"])
}

func TestExtractText_AnnotationError(t *testing.T) {
	_, e := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"error":{"message":"image too large"}}]}`))
	})

	_, err := e.ExtractText(context.Background(), []byte("img"), "image/png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "image too large")
}

func TestExtractText_APIError(t *testing.T) {
	_, e := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"key revoked"}}`))
	})

	_, err := e.ExtractText(context.Background(), []byte("img"), "image/png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestExtractText_MissingKey(t *testing.T) {
	e := vision.NewExtractor(&config.OCRConfig{})

	_, err := e.ExtractText(context.Background(), []byte("img"), "image/png")

	require.ErrorIs(t, err, domain.ErrBackendUnconfigured)
}
