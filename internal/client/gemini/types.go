package gemini

import "github.com/TWRT/issue-disassembler/internal/prompt"

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	Temperature      float64        `json:"temperature"`
	MaxOutputTokens  int            `json:"maxOutputTokens"`
	TopK             int            `json:"topK"`
	TopP             float64        `json:"topP"`
	ResponseMimeType string         `json:"response_mime_type"`
	ResponseSchema   *prompt.Schema `json:"response_schema,omitempty"`
}

type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type GeminiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type GeminiErrors struct {
	Error *GeminiErrorDetail `json:"error"`
}
