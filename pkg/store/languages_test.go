package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageNames(t *testing.T) {
	names := LanguageNames([]string{"en", "fr", "zh-Hans", "not a language"})

	assert.Equal(t, "English", names["en"])
	assert.Equal(t, "French", names["fr"])
	assert.Contains(t, names["zh-Hans"], "Chinese")
	assert.NotContains(t, names, "not a language")
}
