package gemini

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent_Success(t *testing.T) {
	t.Parallel()
	var gotPath, gotKey, gotContentType string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"{\"title\":"},{"text":"\"T\"}"}],"role":"model"}}]}`)
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "gemini-test", "secret")
	text, err := c.GenerateContent("hello")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"T"}`, text)

	assert.Equal(t, "/v1beta/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "application/json", gotContentType)

	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	assert.Equal(t, "hello", parts[0].(map[string]any)["text"])

	cfg := gotBody["generationConfig"].(map[string]any)
	assert.InDelta(t, 0.1, cfg["temperature"], 1e-9)
	assert.InDelta(t, 2048, cfg["maxOutputTokens"], 1e-9)
	assert.InDelta(t, 1, cfg["topK"], 1e-9)
	assert.InDelta(t, 0.1, cfg["topP"], 1e-9)
	assert.Equal(t, "application/json", cfg["response_mime_type"])
	schema := cfg["response_schema"].(map[string]any)
	assert.Equal(t, "OBJECT", schema["type"])
}

func TestGenerateContent_APIError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "", "")
	_, err := c.GenerateContent("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerateContent_APIErrorWithoutEnvelope(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `upstream unavailable`)
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "m", "k")
	_, err := c.GenerateContent("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "503")
}

func TestGenerateContent_InvalidJSON(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "m", "k")
	_, err := c.GenerateContent("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResponseParse)
}

func TestGenerateContent_ExtractionFailure(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "m", "k")
	_, err := c.GenerateContent("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCandidate)
}

func TestGenerateContent_TransportFailureRedactsKey(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseUrl := server.URL
	server.Close()

	c := NewGeminiClient(baseUrl, "m", "top-secret-key")
	_, err := c.GenerateContent("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotContains(t, err.Error(), "top-secret-key")
	assert.Contains(t, err.Error(), "REDACTED")
}

func TestNewGeminiClient_DefaultBaseUrl(t *testing.T) {
	t.Parallel()
	c := NewGeminiClient("", "gemini-2.0-flash", "k")
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent?key=k", c.endpoint(c.token))
}
