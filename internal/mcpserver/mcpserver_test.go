package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stringcat/stringcat/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Localizable.xcstrings")
	manager, err := store.NewManager(path)
	require.NoError(t, err)

	logger := zerolog.Nop()
	return New(manager, &logger, "test")
}

// callTool invokes a tool through the JSON-RPC surface and returns the text
// payload plus the error flag.
func callTool(t *testing.T, s *Server, name string, args map[string]any) (string, bool) {
	t.Helper()

	if args == nil {
		args = map[string]any{}
	}
	params := map[string]any{
		"name":      name,
		"arguments": args,
	}
	rawParams, err := json.Marshal(params)
	require.NoError(t, err)

	request := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":%s}`, rawParams)
	message := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(request))
	require.NotNil(t, message)

	encoded, err := json.Marshal(message)
	require.NoError(t, err)

	var response struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(encoded, &response))
	require.Nil(t, response.Error)
	require.NotEmpty(t, response.Result.Content)
	return response.Result.Content[0].Text, response.Result.IsError
}

func TestUpsertAndListTranslationsTools(t *testing.T) {
	s := newTestServer(t)

	text, isError := callTool(t, s, "upsert_translation", map[string]any{
		"key":      "greeting",
		"language": "en",
		"value":    "Hello",
	})
	require.False(t, isError, text)
	assert.Contains(t, text, "Hello")

	text, isError = callTool(t, s, "list_translations", nil)
	require.False(t, isError, text)

	var records []struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "greeting", records[0].Key)
}

func TestUpsertTranslationToolPluralVariations(t *testing.T) {
	s := newTestServer(t)

	text, isError := callTool(t, s, "upsert_translation", map[string]any{
		"key":      "items",
		"language": "en",
		"variations": map[string]any{
			"plural": map[string]any{
				"one":   map[string]any{"value": "One item"},
				"other": map[string]any{"value": "%d items"},
			},
		},
	})
	require.False(t, isError, text)

	text, isError = callTool(t, s, "get_translation", map[string]any{
		"key":      "items",
		"language": "en",
	})
	require.False(t, isError, text)

	var value struct {
		Variations map[string]map[string]struct {
			Value *string `json:"value"`
		} `json:"variations"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &value))
	require.Contains(t, value.Variations, "plural")
	require.NotNil(t, value.Variations["plural"]["one"].Value)
	assert.Equal(t, "One item", *value.Variations["plural"]["one"].Value)
}

func TestUpsertTranslationToolClearsWithNull(t *testing.T) {
	s := newTestServer(t)

	callTool(t, s, "upsert_translation", map[string]any{
		"key": "greeting", "language": "en", "value": "Hello",
	})
	callTool(t, s, "upsert_translation", map[string]any{
		"key": "greeting", "language": "fr", "value": "Bonjour",
	})

	// Explicit null clears the value; the emptied localization disappears.
	text, isError := callTool(t, s, "upsert_translation", map[string]any{
		"key": "greeting", "language": "fr", "value": nil,
	})
	require.False(t, isError, text)

	text, _ = callTool(t, s, "get_translation", map[string]any{
		"key": "greeting", "language": "fr",
	})
	assert.Equal(t, "null", text)
}

func TestGetTranslationToolMissingReturnsNull(t *testing.T) {
	s := newTestServer(t)

	text, isError := callTool(t, s, "get_translation", map[string]any{
		"key": "missing", "language": "en",
	})
	require.False(t, isError)
	assert.Equal(t, "null", text)
}

func TestDeleteToolsReportMissing(t *testing.T) {
	s := newTestServer(t)

	text, isError := callTool(t, s, "delete_translation", map[string]any{
		"key": "missing", "language": "en",
	})
	assert.True(t, isError)
	assert.Contains(t, text, "not found")

	text, isError = callTool(t, s, "delete_key", map[string]any{
		"key": "missing",
	})
	assert.True(t, isError)
	assert.Contains(t, text, "not found")
}

func TestKeyLifecycleTools(t *testing.T) {
	s := newTestServer(t)

	callTool(t, s, "upsert_translation", map[string]any{
		"key": "old", "language": "en", "value": "Hello",
	})

	text, isError := callTool(t, s, "rename_key", map[string]any{
		"key": "old", "new_key": "new",
	})
	require.False(t, isError, text)

	text, isError = callTool(t, s, "set_comment", map[string]any{
		"key": "new", "comment": "Shown on launch",
	})
	require.False(t, isError, text)

	text, _ = callTool(t, s, "list_translations", nil)
	assert.Contains(t, text, "Shown on launch")

	text, isError = callTool(t, s, "delete_key", map[string]any{"key": "new"})
	require.False(t, isError, text)

	text, _ = callTool(t, s, "list_translations", nil)
	assert.Equal(t, "[]", text)
}

func TestLanguageTools(t *testing.T) {
	s := newTestServer(t)

	callTool(t, s, "upsert_translation", map[string]any{
		"key": "greeting", "language": "en", "value": "Hello",
	})

	text, isError := callTool(t, s, "add_language", map[string]any{"language": "fr"})
	require.False(t, isError, text)

	text, isError = callTool(t, s, "list_languages", nil)
	require.False(t, isError, text)
	assert.Contains(t, text, `"fr"`)

	text, isError = callTool(t, s, "list_untranslated", nil)
	require.False(t, isError, text)
	assert.Contains(t, text, `"greeting"`)

	text, isError = callTool(t, s, "translation_percentages", nil)
	require.False(t, isError, text)

	var progress struct {
		Percentages map[string]float64 `json:"percentages"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &progress))
	assert.Equal(t, 100.0, progress.Percentages["en"])
	assert.Equal(t, 0.0, progress.Percentages["fr"])

	text, isError = callTool(t, s, "remove_language", map[string]any{"language": "en"})
	assert.True(t, isError)
	assert.Contains(t, text, "source language")
}

func TestListFilesTool(t *testing.T) {
	s := newTestServer(t)

	text, isError := callTool(t, s, "list_files", nil)
	require.False(t, isError, text)

	var listing struct {
		Files []struct {
			Path  string `json:"path"`
			Label string `json:"label"`
		} `json:"files"`
		Default string `json:"default"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &listing))
	require.NotEmpty(t, listing.Files)
	assert.NotEmpty(t, listing.Default)
}
