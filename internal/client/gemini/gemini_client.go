package gemini

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/TWRT/issue-disassembler/internal/prompt"
)

const DefaultBaseUrl = "https://generativelanguage.googleapis.com"

var (
	ErrTransport     = errors.New("transport failure")
	ErrResponseParse = errors.New("response is not valid JSON")
)

type GeminiClient struct {
	baseUrl    string
	model      string
	token      string
	httpClient *http.Client
}

// NewGeminiClient does not validate model or token; empty values produce a
// request the API will reject.
func NewGeminiClient(baseUrl, model, token string) *GeminiClient {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &GeminiClient{
		baseUrl:    baseUrl,
		model:      model,
		token:      token,
		httpClient: &http.Client{},
	}
}

func (c *GeminiClient) endpoint(token string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseUrl, url.PathEscape(c.model), url.QueryEscape(token))
}

func newGenerateContentRequest(text string) GenerateContentRequest {
	return GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: text}}}},
		GenerationConfig: GenerationConfig{
			Temperature:      0.1,
			MaxOutputTokens:  2048,
			TopK:             1,
			TopP:             0.1,
			ResponseMimeType: "application/json",
			ResponseSchema:   prompt.ResponseSchema(),
		},
	}
}

func (c *GeminiClient) GenerateContent(text string) (string, error) {
	body, err := json.Marshal(newGenerateContentRequest(text))
	if err != nil {
		return "", fmt.Errorf("marshal generate content request (gemini): %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint(c.token), bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request (gemini): %w", ErrTransport, c.redact(err))
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: generate content (gemini): %w", ErrTransport, c.redact(err))
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response body (gemini): %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var geminiErr GeminiErrors
		if err := json.Unmarshal(responseBody, &geminiErr); err != nil || geminiErr.Error == nil {
			return "", fmt.Errorf("%w: API error status %d", ErrTransport, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: Gemini error: %s (status %d)", ErrTransport, geminiErr.Error.Message, resp.StatusCode)
	}

	var doc any
	if err := json.Unmarshal(responseBody, &doc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrResponseParse, err)
	}

	return ExtractText(doc)
}

// redact keeps the API key out of url.Error messages.
func (c *GeminiClient) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.endpoint("REDACTED")
	}
	return err
}
