package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"inkference/internal/config"
	"inkference/internal/domain"
	"inkference/internal/parser"
	"inkference/internal/port"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1"

// Sampling parameters for the single extraction request. Chosen for
// low output variance, not creativity.
const (
	temperature     = 0.1
	topP            = 0.8
	topK            = 40
	maxOutputTokens = 2048
)

// Parser implements port.FormParser against the Gemini generateContent
// API. It sends exactly one request per call; retry decisions belong
// to the caller.
type Parser struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewParser creates a Gemini-based form parser.
func NewParser(cfg *config.ParserConfig) *Parser {
	return newParser(cfg, "")
}

// NewParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
func NewParserWithEndpoint(cfg *config.ParserConfig, endpoint string) *Parser {
	return newParser(cfg, endpoint)
}

func newParser(cfg *config.ParserConfig, endpoint string) *Parser {
	model := cfg.EffectiveModel()
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Parser{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *Parser) ParseFormText(ctx context.Context, ocrText, formTypeHint string) (*domain.ParsedForm, error) {
	if p.apiKey == "" {
		return nil, domain.ErrBackendUnconfigured
	}

	prompt := parser.BuildFormExtractionPrompt(ocrText, formTypeHint)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     temperature,
			"topP":            topP,
			"topK":            topK,
			"maxOutputTokens": maxOutputTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return parseResponse(respBody)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func parseResponse(body []byte) (*domain.ParsedForm, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API: no parts")
	}

	text := resp.Candidates[0].Content.Parts[0].Text

	jsonText, ok := parser.ExtractJSONObject(text)
	if !ok {
		return nil, &parser.MalformedResponseError{RawText: text}
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, &parser.InvalidJSONError{RawText: text, Err: err}
	}

	form := parser.NormalizeForm(raw)
	log.Printf("gemini.Parser: extracted %d fields (formType=%s)", len(form.Fields), form.FormType)
	return &form, nil
}

var _ port.FormParser = (*Parser)(nil)
