package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUsesAppleColonSpacing(t *testing.T) {
	c := NewCatalog()
	entry := NewEntry()
	loc := NewLocalization()
	loc.StringUnit = &StringUnit{Value: strPtr("Hello"), State: strPtr("translated")}
	entry.Localizations.Set("en", loc)
	c.Strings.Set("greeting", entry)

	out := string(Write(c))
	assert.Contains(t, out, `"version" : "1.0"`)
	assert.Contains(t, out, `"sourceLanguage" : "en"`)
	assert.Contains(t, out, `"state" : "translated"`)
	assert.Contains(t, out, `"value" : "Hello"`)
	assert.NotContains(t, out, `": `)
}

func TestWriteNewCatalogCanonicalOrder(t *testing.T) {
	c := NewCatalog()

	out := string(Write(c))
	assert.Equal(t, "{\n  \"version\" : \"1.0\",\n  \"sourceLanguage\" : \"en\",\n  \"strings\" : {}\n}", out)
}

func TestWriteStringUnitStateBeforeValue(t *testing.T) {
	c := NewCatalog()
	entry := NewEntry()
	loc := NewLocalization()
	loc.StringUnit = &StringUnit{Value: strPtr("Hi"), State: strPtr("translated")}
	entry.Localizations.Set("en", loc)
	c.Strings.Set("hi", entry)

	out := string(Write(c))
	stateIdx := strings.Index(out, `"state"`)
	valueIdx := strings.Index(out, `"value"`)
	require.GreaterOrEqual(t, stateIdx, 0)
	require.GreaterOrEqual(t, valueIdx, 0)
	assert.Less(t, stateIdx, valueIdx)
}

func TestWriteEscapesControlCharacters(t *testing.T) {
	c := NewCatalog()
	entry := NewEntry()
	loc := NewLocalization()
	loc.StringUnit = &StringUnit{Value: strPtr("Line 1\nLine 2\t\"quoted\"\x01")}
	entry.Localizations.Set("en", loc)
	c.Strings.Set("escapes", entry)
	Normalize(c)

	out := string(Write(c))
	assert.Contains(t, out, `Line 1\nLine 2\t\"quoted\"`)
}

func TestWriteFormatVersionForms(t *testing.T) {
	c := NewCatalog()
	c.FormatVersion = FormatVersionNumber(1)
	assert.Contains(t, string(Write(c)), `"formatVersion" : 1`)

	c.FormatVersion = FormatVersionText("1.1")
	assert.Contains(t, string(Write(c)), `"formatVersion" : "1.1"`)
}

func TestRoundTripUnchanged(t *testing.T) {
	input := "{\n" +
		"  \"sourceLanguage\" : \"en\",\n" +
		"  \"strings\" : {\n" +
		"    \"greeting\" : {\n" +
		"      \"comment\" : \"Shown on launch\",\n" +
		"      \"localizations\" : {\n" +
		"        \"en\" : {\n" +
		"          \"stringUnit\" : {\n" +
		"            \"state\" : \"translated\",\n" +
		"            \"value\" : \"Hello\"\n" +
		"          }\n" +
		"        },\n" +
		"        \"fr\" : {\n" +
		"          \"stringUnit\" : {\n" +
		"            \"state\" : \"translated\",\n" +
		"            \"value\" : \"Bonjour\"\n" +
		"          }\n" +
		"        }\n" +
		"      }\n" +
		"    }\n" +
		"  },\n" +
		"  \"version\" : \"1.0\"\n" +
		"}\n"

	c, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, input, string(Write(c)))
}

func TestVersionPositionPreserved(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "version first",
			input: "{\n  \"version\" : \"1.0\",\n  \"sourceLanguage\" : \"en\",\n  \"strings\" : {}\n}",
		},
		{
			name:  "version middle",
			input: "{\n  \"sourceLanguage\" : \"en\",\n  \"version\" : \"1.0\",\n  \"strings\" : {}\n}",
		},
		{
			name:  "version last",
			input: "{\n  \"sourceLanguage\" : \"en\",\n  \"strings\" : {},\n  \"version\" : \"1.0\"\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(Write(c)))
		})
	}
}

func TestKeyOrderPreservedAndNewKeysAppended(t *testing.T) {
	input := "{\n" +
		"  \"sourceLanguage\" : \"en\",\n" +
		"  \"strings\" : {\n" +
		"    \"zebra\" : {},\n" +
		"    \"apple\" : {},\n" +
		"    \"mango\" : {}\n" +
		"  },\n" +
		"  \"version\" : \"1.0\"\n" +
		"}"

	c, err := Parse([]byte(input))
	require.NoError(t, err)

	c.Strings.Set("banana", NewEntry())

	assert.Equal(t, []string{"zebra", "apple", "mango", "banana"}, c.Strings.Keys())

	out := string(Write(c))
	zebra := strings.Index(out, `"zebra"`)
	apple := strings.Index(out, `"apple"`)
	mango := strings.Index(out, `"mango"`)
	banana := strings.Index(out, `"banana"`)
	assert.True(t, zebra < apple && apple < mango && mango < banana)
}

func TestVariationCaseOrderPreserved(t *testing.T) {
	input := "{\n" +
		"  \"sourceLanguage\" : \"en\",\n" +
		"  \"strings\" : {\n" +
		"    \"items\" : {\n" +
		"      \"localizations\" : {\n" +
		"        \"en\" : {\n" +
		"          \"variations\" : {\n" +
		"            \"plural\" : {\n" +
		"              \"other\" : {\n" +
		"                \"stringUnit\" : {\n" +
		"                  \"state\" : \"translated\",\n" +
		"                  \"value\" : \"%d items\"\n" +
		"                }\n" +
		"              },\n" +
		"              \"one\" : {\n" +
		"                \"stringUnit\" : {\n" +
		"                  \"state\" : \"translated\",\n" +
		"                  \"value\" : \"One item\"\n" +
		"                }\n" +
		"              }\n" +
		"            }\n" +
		"          }\n" +
		"        }\n" +
		"      }\n" +
		"    }\n" +
		"  },\n" +
		"  \"version\" : \"1.0\"\n" +
		"}"

	c, err := Parse([]byte(input))
	require.NoError(t, err)
	// "other" was parsed before "one" and must stay that way.
	assert.Equal(t, input, string(Write(c)))
}

func TestParsedStateAfterValueOrderPreserved(t *testing.T) {
	input := "{\n" +
		"  \"sourceLanguage\" : \"en\",\n" +
		"  \"strings\" : {\n" +
		"    \"greeting\" : {\n" +
		"      \"localizations\" : {\n" +
		"        \"en\" : {\n" +
		"          \"stringUnit\" : {\n" +
		"            \"value\" : \"Hello\",\n" +
		"            \"state\" : \"translated\"\n" +
		"          }\n" +
		"        }\n" +
		"      }\n" +
		"    }\n" +
		"  },\n" +
		"  \"version\" : \"1.0\"\n" +
		"}"

	c, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, input, string(Write(c)))
}

func TestTrailingNewlineReproduced(t *testing.T) {
	withNewline := "{\n  \"sourceLanguage\" : \"en\",\n  \"strings\" : {},\n  \"version\" : \"1.0\"\n}\n"
	c, err := Parse([]byte(withNewline))
	require.NoError(t, err)
	assert.Equal(t, withNewline, string(Write(c)))

	without := strings.TrimSuffix(withNewline, "\n")
	c, err = Parse([]byte(without))
	require.NoError(t, err)
	assert.Equal(t, without, string(Write(c)))
}

func TestParseRejectsMalformedInput(t *testing.T) {
	_, err := Parse([]byte(`{"strings": `))
	assert.Error(t, err)

	_, err = Parse([]byte(`[]`))
	assert.Error(t, err)
}

func TestParseIgnoresUnknownMembers(t *testing.T) {
	input := `{
  "version" : "1.0",
  "futureFeature" : {"nested" : [1, 2, {"deep" : true}]},
  "sourceLanguage" : "en",
  "strings" : {}
}`
	c, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "1.0", c.Version)
	assert.Equal(t, "en", c.SourceLanguage)
}

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, c.Version)
	assert.Equal(t, DefaultSourceLanguage, c.SourceLanguage)
	assert.NotNil(t, c.Strings)
}
