package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stringcat/stringcat/pkg/catalog"
	"github.com/stringcat/stringcat/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := LoadOrCreate(filepath.Join(t.TempDir(), "Localizable.xcstrings"))
	require.NoError(t, err)
	return s
}

func upsertValue(t *testing.T, s *Store, key, lang, value string) {
	t.Helper()
	_, err := s.UpsertTranslation(key, lang, catalog.UpdateValueState(&value, nil))
	require.NoError(t, err)
}

func TestUpsertCreatesFileAndReturnsValue(t *testing.T) {
	s := newTestStore(t)

	value := "Hello"
	result, err := s.UpsertTranslation("greeting", "en", catalog.UpdateValueState(&value, nil))
	require.NoError(t, err)
	require.NotNil(t, result.Value)
	assert.Equal(t, "Hello", *result.Value)
	assert.Equal(t, "translated", *result.State)

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"greeting" : {`)
	assert.Contains(t, string(raw), `"value" : "Hello"`)
}

func TestGetTranslationMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)
	assert.Nil(t, s.GetTranslation("missing", "en"))

	upsertValue(t, s, "greeting", "en", "Hello")
	assert.Nil(t, s.GetTranslation("greeting", "fr"))
	assert.NotNil(t, s.GetTranslation("greeting", "en"))
}

func TestUpsertMergesWithoutTouchingSiblings(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")
	upsertValue(t, s, "greeting", "fr", "Bonjour")

	_, err := s.UpsertTranslation("greeting", "en", &catalog.TranslationUpdate{
		State: catalog.Set("needs-review"),
	})
	require.NoError(t, err)

	en := s.GetTranslation("greeting", "en")
	assert.Equal(t, "Hello", *en.Value)
	assert.Equal(t, "needs-review", *en.State)
	fr := s.GetTranslation("greeting", "fr")
	assert.Equal(t, "Bonjour", *fr.Value)
}

func TestDeleteTranslation(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")
	upsertValue(t, s, "greeting", "fr", "Bonjour")

	require.NoError(t, s.DeleteTranslation("greeting", "fr"))
	assert.Nil(t, s.GetTranslation("greeting", "fr"))
	assert.NotNil(t, s.GetTranslation("greeting", "en"))

	err := s.DeleteTranslation("greeting", "fr")
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteTranslationRemovesEntryWhenLastLanguageGoes(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")
	require.NoError(t, s.SetComment("greeting", ptr("still noted")))

	require.NoError(t, s.DeleteTranslation("greeting", "en"))

	assert.Empty(t, s.ListRecords(""))
}

func TestDeleteKey(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")

	require.NoError(t, s.DeleteKey("greeting"))
	assert.True(t, errors.IsNotFound(s.DeleteKey("greeting")))
}

func TestRenameKey(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "a", "en", "A")
	upsertValue(t, s, "b", "en", "B")
	upsertValue(t, s, "c", "en", "C")

	require.NoError(t, s.RenameKey("a", "a2"))

	keys := []string{}
	for _, record := range s.ListRecords("") {
		keys = append(keys, record.Key)
	}
	// Renamed keys move to the end of the catalog order.
	assert.Equal(t, []string{"b", "c", "a2"}, keys)

	assert.True(t, errors.IsAlreadyExists(s.RenameKey("b", "c")))
	assert.True(t, errors.IsNotFound(s.RenameKey("missing", "x")))
	assert.NoError(t, s.RenameKey("b", "b"))
}

func TestSetCommentAndClearing(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetComment("greeting", ptr("shown on launch")))
	records := s.ListRecords("")
	require.Len(t, records, 1)
	assert.Equal(t, "shown on launch", *records[0].Comment)

	// Clearing the only metadata of a localization-free entry prunes it.
	require.NoError(t, s.SetComment("greeting", nil))
	assert.Empty(t, s.ListRecords(""))
}

func TestSetExtractionStateAndShouldTranslate(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")

	require.NoError(t, s.SetExtractionState("greeting", ptr("manual")))
	require.NoError(t, s.SetShouldTranslate("greeting", ptr(false)))

	records := s.ListRecords("")
	require.Len(t, records, 1)
	assert.Equal(t, "manual", *records[0].ExtractionState)
	assert.False(t, *records[0].ShouldTranslate)
}

func TestPluralVariationsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	update := (&catalog.TranslationUpdate{}).
		AddVariation(catalog.SelectorPlural, "one", catalog.UpdateValueState(ptr("One item"), nil)).
		AddVariation(catalog.SelectorPlural, "other", catalog.UpdateValueState(ptr("%d items"), nil))
	_, err := s.UpsertTranslation("items", "en", update)
	require.NoError(t, err)

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"plural"`)

	reloaded, err := LoadOrCreate(s.Path())
	require.NoError(t, err)
	value := reloaded.GetTranslation("items", "en")
	require.NotNil(t, value)
	plural := value.Variations[catalog.SelectorPlural]
	require.NotNil(t, plural)
	assert.Equal(t, "One item", *plural["one"].Value)
	assert.Equal(t, "%d items", *plural["other"].Value)
}

func TestPluralVariationMergePreservesExisting(t *testing.T) {
	s := newTestStore(t)

	first := (&catalog.TranslationUpdate{}).
		AddVariation(catalog.SelectorPlural, "one", catalog.UpdateValueState(ptr("One"), nil)).
		AddVariation(catalog.SelectorPlural, "other", catalog.UpdateValueState(ptr("%d things"), nil))
	_, err := s.UpsertTranslation("items", "en", first)
	require.NoError(t, err)

	second := (&catalog.TranslationUpdate{}).
		AddVariation(catalog.SelectorPlural, "one", catalog.UpdateValueState(ptr("A single thing"), nil))
	_, err = s.UpsertTranslation("items", "en", second)
	require.NoError(t, err)

	value := s.GetTranslation("items", "en")
	plural := value.Variations[catalog.SelectorPlural]
	assert.Equal(t, "A single thing", *plural["one"].Value)
	assert.Equal(t, "%d things", *plural["other"].Value)
}

func TestVariationWithStateOnlyPersists(t *testing.T) {
	s := newTestStore(t)

	update := (&catalog.TranslationUpdate{}).
		AddVariation(catalog.SelectorPlural, "one", &catalog.TranslationUpdate{
			Value: catalog.Set(""),
			State: catalog.Set("new"),
		})
	_, err := s.UpsertTranslation("items", "de", update)
	require.NoError(t, err)

	value := s.GetTranslation("items", "de")
	require.NotNil(t, value)
	one := value.Variations[catalog.SelectorPlural]["one"]
	require.NotNil(t, one)
	assert.Nil(t, one.Value)
	assert.Equal(t, "new", *one.State)
}

func TestSubstitutionWithPluralVariations(t *testing.T) {
	s := newTestStore(t)

	sub := &catalog.SubstitutionUpdate{
		ArgNum:          catalog.Set(int64(1)),
		FormatSpecifier: catalog.Set("d"),
	}
	sub.AddVariation(catalog.SelectorPlural, "one", catalog.UpdateValueState(ptr("One file"), nil))
	sub.AddVariation(catalog.SelectorPlural, "other", catalog.UpdateValueState(ptr("%d files"), nil))

	_, err := s.UpsertTranslation("files.count", "en",
		(&catalog.TranslationUpdate{}).SetSubstitution("count", sub))
	require.NoError(t, err)

	value := s.GetTranslation("files.count", "en")
	require.NotNil(t, value)
	count := value.Substitutions["count"]
	require.NotNil(t, count)
	assert.Equal(t, int64(1), *count.ArgNum)
	assert.Equal(t, "d", *count.FormatSpecifier)
	assert.Len(t, count.Variations[catalog.SelectorPlural], 2)

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"substitutions"`)
	assert.Contains(t, string(raw), `"argNum" : 1`)
}

func TestListRecordsFilter(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "login.button", "en", "Sign in")
	upsertValue(t, s, "logout.button", "en", "Sign out")
	upsertValue(t, s, "greeting", "fr", "Bonjour")

	assert.Len(t, s.ListRecords(""), 3)
	assert.Len(t, s.ListRecords("login"), 1)
	assert.Len(t, s.ListRecords("SIGN"), 2)
	assert.Len(t, s.ListRecords("bonjour"), 1)
	assert.Empty(t, s.ListRecords("nothing matches"))
}

func TestListSummaries(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "plain", "en", "Plain")

	update := (&catalog.TranslationUpdate{}).
		AddVariation(catalog.SelectorPlural, "one", catalog.UpdateValueState(ptr("One"), nil))
	_, err := s.UpsertTranslation("varied", "en", update)
	require.NoError(t, err)
	upsertValue(t, s, "varied", "fr", "Varié")

	summaries := s.ListSummaries("")
	require.Len(t, summaries, 2)

	byKey := map[string]catalog.TranslationSummary{}
	for _, summary := range summaries {
		byKey[summary.Key] = summary
	}
	assert.False(t, byKey["plain"].HasVariations)
	assert.True(t, byKey["varied"].HasVariations)
	assert.ElementsMatch(t, []string{"en", "fr"}, byKey["varied"].Languages)
}

func TestLanguageLifecycle(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")

	require.NoError(t, s.AddLanguage("fr"))

	fr := s.GetTranslation("greeting", "fr")
	require.NotNil(t, fr)
	assert.Nil(t, fr.Value)
	assert.Equal(t, "needs-translation", *fr.State)

	assert.True(t, errors.IsAlreadyExists(s.AddLanguage("en")))
	assert.True(t, errors.IsAlreadyExists(s.AddLanguage("fr")))
	assert.True(t, errors.IsInvalidInput(s.AddLanguage("   ")))
	assert.True(t, errors.IsInvalidInput(s.AddLanguage("not a language")))

	require.NoError(t, s.RemoveLanguage("fr"))
	assert.Nil(t, s.GetTranslation("greeting", "fr"))

	assert.True(t, errors.IsInvalidInput(s.RemoveLanguage("en")))
	assert.True(t, errors.IsNotFound(s.RemoveLanguage("fr")))
}

func TestRemoveLanguageDropsEmptiedEntries(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "both", "en", "Both")
	upsertValue(t, s, "both", "de", "Beide")
	upsertValue(t, s, "german.only", "de", "Nur Deutsch")

	require.NoError(t, s.RemoveLanguage("de"))

	keys := []string{}
	for _, record := range s.ListRecords("") {
		keys = append(keys, record.Key)
	}
	assert.Equal(t, []string{"both"}, keys)
}

func TestRenameLanguage(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")
	upsertValue(t, s, "greeting", "fr", "Bonjour")
	upsertValue(t, s, "farewell", "fr", "Au revoir")

	require.NoError(t, s.RenameLanguage("fr", "fr-CA"))

	assert.Nil(t, s.GetTranslation("greeting", "fr"))
	assert.Equal(t, "Bonjour", *s.GetTranslation("greeting", "fr-CA").Value)
	assert.Equal(t, "Au revoir", *s.GetTranslation("farewell", "fr-CA").Value)

	assert.True(t, errors.IsInvalidInput(s.RenameLanguage("en", "en-GB")))
	assert.True(t, errors.IsNotFound(s.RenameLanguage("de", "da")))

	upsertValue(t, s, "greeting", "it", "Ciao")
	assert.True(t, errors.IsAlreadyExists(s.RenameLanguage("it", "fr-CA")))
}

func TestListLanguages(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")
	upsertValue(t, s, "greeting", "fr", "Bonjour")
	upsertValue(t, s, "farewell", "de", "Tschüss")

	assert.Equal(t, []string{"de", "en", "fr"}, s.ListLanguages())
}

func TestListUntranslated(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")
	upsertValue(t, s, "greeting", "fr", "Bonjour")
	upsertValue(t, s, "farewell", "en", "Bye")

	untranslated := s.ListUntranslated()
	assert.Empty(t, untranslated["en"])
	assert.Equal(t, []string{"farewell"}, untranslated["fr"])
}

func TestTranslationPercentages(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "one", "en", "One")
	upsertValue(t, s, "one", "de", "Eins")
	upsertValue(t, s, "two", "en", "Two")
	upsertValue(t, s, "two", "de", "Zwei")
	upsertValue(t, s, "three", "en", "Three")
	upsertValue(t, s, "skipped", "en", "Skipped")
	require.NoError(t, s.SetShouldTranslate("skipped", ptr(false)))

	percentages := s.TranslationPercentages()
	assert.InDelta(t, 100.0, percentages["en"], 0.01)
	assert.InDelta(t, 66.67, percentages["de"], 0.01)
}

func TestTranslationPercentagesEmptyCatalog(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.TranslationPercentages())
}

func TestEndToEndGreetingScenario(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")
	upsertValue(t, s, "greeting", "fr", "Bonjour")

	assert.Equal(t, []string{"en", "fr"}, s.ListLanguages())

	records := s.ListRecords("")
	require.Len(t, records, 1)
	assert.Equal(t, "greeting", records[0].Key)
	assert.Equal(t, "Hello", *records[0].Translations["en"].Value)
	assert.Equal(t, "Bonjour", *records[0].Translations["fr"].Value)
}

func TestPersistedFileUsesAppleDialect(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sourceLanguage" : "en"`)
	assert.Contains(t, string(raw), `"state" : "translated"`)
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	s := newTestStore(t)
	upsertValue(t, s, "greeting", "en", "Hello")

	external := `{
  "sourceLanguage" : "en",
  "strings" : {
    "greeting" : {
      "localizations" : {
        "en" : {
          "stringUnit" : {
            "state" : "translated",
            "value" : "Howdy"
          }
        }
      }
    }
  },
  "version" : "1.0"
}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(external), 0o644))
	require.NoError(t, s.Reload())

	assert.Equal(t, "Howdy", *s.GetTranslation("greeting", "en").Value)
}
