package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"inkference/internal/config"
	"inkference/internal/domain"
	"inkference/internal/port"
)

const apiURL = "https://vision.googleapis.com/v1/images:annotate"

// Extractor implements port.TextExtractor against the Cloud Vision
// images:annotate endpoint with TEXT_DETECTION.
type Extractor struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewExtractor creates a Cloud Vision text extractor.
func NewExtractor(cfg *config.OCRConfig) *Extractor {
	return newExtractor(cfg, "")
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.OCRConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.OCRConfig, endpoint string) *Extractor {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if endpoint == "" {
		endpoint = apiURL
	}
	return &Extractor{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) ExtractText(ctx context.Context, image []byte, contentType string) (string, error) {
	if e.apiKey == "" {
		return "", domain.ErrBackendUnconfigured
	}

	reqBody := map[string]interface{}{
		"requests": []map[string]interface{}{
			{
				"image": map[string]interface{}{
					"content": base64.StdEncoding.EncodeToString(image),
				},
				"features": []map[string]interface{}{
					{"type": "TEXT_DETECTION"},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling vision API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Responses []struct {
			FullTextAnnotation struct {
				Text string `json:"text"`
			} `json:"fullTextAnnotation"`
			Error *struct {
				Message string `json:"message"`
			} `json:"error"`
		} `json:"responses"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Responses) == 0 {
		return "", fmt.Errorf("empty response from vision API")
	}
	if apiErr := parsed.Responses[0].Error; apiErr != nil {
		return "", fmt.Errorf("vision annotation error: %s", apiErr.Message)
	}
	return parsed.Responses[0].FullTextAnnotation.Text, nil
}

var _ port.TextExtractor = (*Extractor)(nil)
