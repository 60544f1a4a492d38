package gemini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrMissingCandidate = errors.New("missing candidate")
	ErrMalformedParts   = errors.New("malformed parts")
)

// ExtractText walks candidates[0].content.parts[*].text of an already
// decoded response document and joins every text fragment in order.
// Parts without a string text are skipped; an empty result is not an error.
func ExtractText(doc any) (string, error) {
	root, _ := doc.(map[string]any)

	candidates, _ := root["candidates"].([]any)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: response has no candidates", ErrMissingCandidate)
	}

	first, _ := candidates[0].(map[string]any)
	content, ok := first["content"]
	if !ok {
		return "", fmt.Errorf("%w: first candidate has no content", ErrMissingCandidate)
	}

	contentObj, _ := content.(map[string]any)
	parts, ok := contentObj["parts"].([]any)
	if !ok {
		return "", fmt.Errorf("%w: content.parts is missing or not an array", ErrMalformedParts)
	}

	texts := lo.FilterMap(parts, func(part any, _ int) (string, bool) {
		obj, ok := part.(map[string]any)
		if !ok {
			return "", false
		}
		text, ok := obj["text"].(string)
		return text, ok
	})

	return strings.Join(texts, ""), nil
}
