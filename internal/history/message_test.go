package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSON(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	msgs := []Message{
		{Role: RoleUser, Content: "a < b & 한글"},
		{Role: RoleAssistant, Content: "ok"},
	}

	data, name, err := ExportJSON(msgs, now)
	require.NoError(t, err)

	if seoul == time.UTC {
		assert.Equal(t, "conversation_20250102_150405.json", name)
	} else {
		assert.Equal(t, "conversation_20250103_000405.json", name)
	}
	assert.Contains(t, string(data), "a < b & 한글")
	assert.Contains(t, string(data), "\n  {")
	assert.NotEqual(t, byte('\n'), data[len(data)-1])
}

func TestExportJSON_Empty(t *testing.T) {
	data, _, err := ExportJSON(nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestImportJSON_RoundTrip(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser, Content: "line one\nline two"},
		{Role: RoleAssistant, Content: "```python\nx = 1\n```"},
	}
	data, _, err := ExportJSON(msgs, time.Now())
	require.NoError(t, err)

	got, err := ImportJSON(data)
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
}

func TestImportJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{{`},
		{"object", `{"role":"user","content":"x"}`},
		{"null", `null`},
		{"missing content", `[{"role":"user"}]`},
		{"missing role", `[{"content":"x"}]`},
		{"non-string content", `[{"role":"user","content":3}]`},
		{"null entry", `[null]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportJSON([]byte(tt.input))
			assert.ErrorIs(t, err, ErrInvalidConversation)
		})
	}
}

func TestImportJSON_EmptyList(t *testing.T) {
	got, err := ImportJSON([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, DefaultPreview, Preview(nil))
	assert.Equal(t, DefaultPreview, Preview(&Session{Preview: "  "}))
	assert.Equal(t, "Title", Preview(&Session{Preview: " Title\nmore"}))
}

func TestUserMessageCount(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser}, {Role: RoleAssistant}, {Role: RoleUser},
	}
	assert.Equal(t, 2, UserMessageCount(msgs))
	assert.Equal(t, 0, UserMessageCount(nil))
}

func TestNewSessionID_Unique(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
