package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_EmbedsInputVerbatim(t *testing.T) {
	t.Parallel()
	input := "プリンターが動かない\n```not a fence```\n{\"x\": 1}"
	got := Compose(input)
	assert.Contains(t, got, "```\n"+input+"\n```")
	assert.True(t, strings.HasPrefix(got, "以下は現在直面している"))
	assert.True(t, strings.HasSuffix(got, input+"\n```"))
}

func TestCompose_EmptyInput(t *testing.T) {
	t.Parallel()
	got := Compose("")
	assert.NotEmpty(t, got)
	assert.True(t, strings.HasSuffix(got, "以下本文:\n```\n\n```"))
}

func TestCompose_DescribesSchemaFields(t *testing.T) {
	t.Parallel()
	got := Compose("x")
	for _, field := range []string{"title", "summary", "issues", "description", "estimated_working_hours"} {
		assert.Contains(t, got, field)
	}
}

func TestResponseSchema_Shape(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(ResponseSchema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "OBJECT", doc["type"])
	assert.Equal(t, []any{"title", "summary", "issues"}, doc["required"])

	props := doc["properties"].(map[string]any)
	issues := props["issues"].(map[string]any)
	assert.Equal(t, "ARRAY", issues["type"])

	items := issues["items"].(map[string]any)
	itemProps := items["properties"].(map[string]any)
	hours := itemProps["estimated_working_hours"].(map[string]any)
	assert.Equal(t, "INTEGER", hours["type"])
	assert.Equal(t, []any{"title", "description", "estimated_working_hours"}, items["propertyOrdering"])
}
