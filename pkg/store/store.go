// Package store wraps catalog documents with file-backed persistence. A
// Store owns one catalog file behind a single coarse lock; the Manager caches
// Stores by canonical path and discovers catalog files under a search root.
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/stringcat/stringcat/pkg/catalog"
	"github.com/stringcat/stringcat/pkg/errors"
)

// Store binds one catalog file to its in-memory document. Every mutation runs
// read-merge-normalize-serialize-persist under the write lock, so memory and
// disk stay consistent on the success path and at most one mutation is in
// flight per file. Reads share the lock.
type Store struct {
	path string

	mu  sync.RWMutex
	doc *catalog.Catalog
}

// LoadOrCreate opens the catalog at path, creating parent directories and an
// empty document when the file does not exist yet. The loaded document is
// normalized before use.
func LoadOrCreate(path string) (*Store, error) {
	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, errors.WrapIO("create", parent, err)
		}
	}

	doc, err := readCatalog(path)
	if err != nil {
		return nil, err
	}
	catalog.Normalize(doc)

	return &Store{path: path, doc: doc}, nil
}

func readCatalog(path string) (*catalog.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog.NewCatalog(), nil
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return catalog.ParseFile(path, raw)
}

// Path returns the file this store persists to.
func (s *Store) Path() string {
	return s.path
}

// Reload replaces the in-memory document with the current file contents.
func (s *Store) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return errors.WrapIO("read", s.path, err)
	}
	doc, err := catalog.ParseFile(s.path, raw)
	if err != nil {
		return err
	}
	catalog.Normalize(doc)

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// persistLocked normalizes, serializes, and writes the document. Callers hold
// the write lock.
func (s *Store) persistLocked() error {
	catalog.Normalize(s.doc)
	return errors.WrapIO("write", s.path, os.WriteFile(s.path, catalog.Write(s.doc), 0o644))
}

// ListLanguages returns the sorted set of language codes: the source language
// plus every code appearing in any entry.
func (s *Store) ListLanguages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.doc.Languages()
	languages := make([]string, 0, len(set))
	for code := range set {
		languages = append(languages, code)
	}
	sort.Strings(languages)
	return languages
}

// ListRecords returns the full per-key rows in catalog order. A non-empty
// filter keeps only entries whose key or any nested translation value
// contains it, case-insensitively.
func (s *Store) ListRecords(filter string) []catalog.TranslationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]catalog.TranslationRecord, 0, s.doc.Strings.Len())
	s.doc.Strings.ForEach(func(key string, entry *catalog.Entry) bool {
		if filter != "" && !catalog.EntryContains(key, entry, filter) {
			return true
		}
		translations := make(map[string]*catalog.TranslationValue, entry.Localizations.Len())
		entry.Localizations.ForEach(func(code string, localization *catalog.Localization) bool {
			translations[code] = catalog.ValueFromLocalization(localization)
			return true
		})
		records = append(records, catalog.TranslationRecord{
			Key:             key,
			Comment:         entry.Comment,
			ExtractionState: entry.ExtractionState,
			ShouldTranslate: entry.ShouldTranslate,
			Translations:    translations,
		})
		return true
	})
	return records
}

// ListSummaries returns the lightweight per-key rows in catalog order, with
// the same filter semantics as ListRecords.
func (s *Store) ListSummaries(filter string) []catalog.TranslationSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]catalog.TranslationSummary, 0, s.doc.Strings.Len())
	s.doc.Strings.ForEach(func(key string, entry *catalog.Entry) bool {
		if filter != "" && !catalog.EntryContains(key, entry, filter) {
			return true
		}
		hasVariations := false
		entry.Localizations.ForEach(func(_ string, localization *catalog.Localization) bool {
			if localization.Variations.Len() > 0 || localization.Substitutions.Len() > 0 {
				hasVariations = true
				return false
			}
			return true
		})
		summaries = append(summaries, catalog.TranslationSummary{
			Key:           key,
			Comment:       entry.Comment,
			Languages:     entry.Localizations.Keys(),
			HasVariations: hasVariations,
		})
		return true
	})
	return summaries
}

// GetTranslation returns a snapshot of the (key, language) localization, or
// nil when the pair does not exist. A missing pair is not an error.
func (s *Store) GetTranslation(key, lang string) *catalog.TranslationValue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.doc.Strings.Get(key)
	if !ok {
		return nil
	}
	localization, ok := entry.Localizations.Get(lang)
	if !ok {
		return nil
	}
	return catalog.ValueFromLocalization(localization)
}

// UpsertTranslation creates the entry and localization as needed, merges the
// partial update, persists, and returns the merged content as it stood before
// normalization pruning.
func (s *Store) UpsertTranslation(key, lang string, update *catalog.TranslationUpdate) (*catalog.TranslationValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.doc.Strings.Get(key)
	if !ok {
		entry = catalog.NewEntry()
		s.doc.Strings.Set(key, entry)
	}
	localization, ok := entry.Localizations.Get(lang)
	if !ok {
		localization = catalog.NewLocalization()
		entry.Localizations.Set(lang, localization)
	}

	catalog.ApplyUpdate(localization, update)
	updated := catalog.ValueFromLocalization(localization)

	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTranslation removes the (key, language) localization. The entry goes
// with it when no localizations remain, regardless of metadata.
func (s *Store) DeleteTranslation(key, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.doc.Strings.Get(key)
	if !ok || !entry.Localizations.Delete(lang) {
		return errors.NewTranslationMissingError(key, lang)
	}
	if entry.Localizations.Len() == 0 {
		s.doc.Strings.Delete(key)
	}
	return s.persistLocked()
}

// DeleteKey removes the entry for key.
func (s *Store) DeleteKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.doc.Strings.Delete(key) {
		return errors.NewKeyMissingError(key)
	}
	return s.persistLocked()
}

// RenameKey relocates an entry under a new key. The renamed entry moves to
// the end of the catalog order. Renaming a key to itself succeeds as a no-op.
func (s *Store) RenameKey(oldKey, newKey string) error {
	if oldKey == newKey {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Strings.Has(newKey) {
		return errors.NewKeyExistsError(newKey)
	}
	entry, ok := s.doc.Strings.Get(oldKey)
	if !ok {
		return errors.NewKeyMissingError(oldKey)
	}
	s.doc.Strings.Delete(oldKey)
	s.doc.Strings.Set(newKey, entry)
	return s.persistLocked()
}

// SetComment sets or clears the entry's comment, creating the entry if
// needed.
func (s *Store) SetComment(key string, comment *string) error {
	return s.setEntryField(key, func(entry *catalog.Entry) {
		entry.Comment = comment
	})
}

// SetExtractionState sets or clears the entry's extraction state, creating
// the entry if needed.
func (s *Store) SetExtractionState(key string, state *string) error {
	return s.setEntryField(key, func(entry *catalog.Entry) {
		entry.ExtractionState = state
	})
}

// SetShouldTranslate sets or clears the entry's shouldTranslate flag,
// creating the entry if needed.
func (s *Store) SetShouldTranslate(key string, shouldTranslate *bool) error {
	return s.setEntryField(key, func(entry *catalog.Entry) {
		entry.ShouldTranslate = shouldTranslate
	})
}

func (s *Store) setEntryField(key string, set func(entry *catalog.Entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.doc.Strings.Get(key)
	if !ok {
		entry = catalog.NewEntry()
		s.doc.Strings.Set(key, entry)
	}
	set(entry)
	return s.persistLocked()
}

// AddLanguage inserts a needs-translation placeholder localization for code
// into every entry. The code must be a well-formed language tag and must not
// already appear anywhere in the catalog.
func (s *Store) AddLanguage(code string) error {
	if err := validateLanguageCode(code); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.HasLanguage(code) {
		return errors.NewLanguageExistsError(code)
	}

	s.doc.Strings.ForEach(func(_ string, entry *catalog.Entry) bool {
		if !entry.Localizations.Has(code) {
			placeholder := catalog.NewLocalization()
			placeholder.StringUnit = &catalog.StringUnit{
				State: ptr(catalog.PlaceholderTranslationState),
			}
			entry.Localizations.Set(code, placeholder)
		}
		return true
	})
	return s.persistLocked()
}

// RemoveLanguage deletes the localization for code from every entry. Entries
// left with zero localizations are dropped. The source language cannot be
// removed.
func (s *Store) RemoveLanguage(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code == s.doc.SourceLanguage {
		return errors.NewSourceLanguageError("remove", code)
	}
	if !s.doc.HasLanguage(code) {
		return errors.NewLanguageMissingError(code)
	}

	removed := []string{}
	s.doc.Strings.ForEach(func(key string, entry *catalog.Entry) bool {
		if entry.Localizations.Delete(code) && entry.Localizations.Len() == 0 {
			removed = append(removed, key)
		}
		return true
	})
	for _, key := range removed {
		s.doc.Strings.Delete(key)
	}
	return s.persistLocked()
}

// RenameLanguage relocates every entry's localization from oldCode to
// newCode. The source language cannot be renamed, and the new code must be a
// well-formed language tag not already present.
func (s *Store) RenameLanguage(oldCode, newCode string) error {
	if err := validateLanguageCode(newCode); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if oldCode == s.doc.SourceLanguage {
		return errors.NewSourceLanguageError("rename", oldCode)
	}
	if !s.doc.HasLanguage(oldCode) {
		return errors.NewLanguageMissingError(oldCode)
	}
	if s.doc.HasLanguage(newCode) {
		return errors.NewLanguageExistsError(newCode)
	}

	s.doc.Strings.ForEach(func(_ string, entry *catalog.Entry) bool {
		if localization, ok := entry.Localizations.Get(oldCode); ok {
			entry.Localizations.Delete(oldCode)
			entry.Localizations.Set(newCode, localization)
		}
		return true
	})
	return s.persistLocked()
}

// ListUntranslated returns, per language, the keys whose localization for
// that language is absent or has no non-empty value. Keys keep catalog order.
func (s *Store) ListUntranslated() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	untranslated := make(map[string][]string)
	for code := range s.doc.Languages() {
		keys := []string{}
		s.doc.Strings.ForEach(func(key string, entry *catalog.Entry) bool {
			if !hasNonEmptyValue(entry, code) {
				keys = append(keys, key)
			}
			return true
		})
		untranslated[code] = keys
	}
	return untranslated
}

// TranslationPercentages returns per-language completion: among entries not
// marked shouldTranslate=false, the share carrying a non-empty value for that
// language, as a percentage. The result is empty when no entry counts.
func (s *Store) TranslationPercentages() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	denominator := 0
	translated := make(map[string]int)
	s.doc.Strings.ForEach(func(_ string, entry *catalog.Entry) bool {
		if entry.ShouldTranslate != nil && !*entry.ShouldTranslate {
			return true
		}
		denominator++
		entry.Localizations.ForEach(func(code string, localization *catalog.Localization) bool {
			if localizationHasValue(localization) {
				translated[code]++
			}
			return true
		})
		return true
	})

	percentages := make(map[string]float64)
	if denominator == 0 {
		return percentages
	}
	for code := range s.doc.Languages() {
		percentages[code] = float64(translated[code]) / float64(denominator) * 100
	}
	return percentages
}

func hasNonEmptyValue(entry *catalog.Entry, code string) bool {
	localization, ok := entry.Localizations.Get(code)
	return ok && localizationHasValue(localization)
}

func localizationHasValue(l *catalog.Localization) bool {
	return l != nil && l.StringUnit != nil && l.StringUnit.Value != nil && *l.StringUnit.Value != ""
}

func validateLanguageCode(code string) error {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return errors.NewInvalidLanguageError("", "language code is required")
	}
	if trimmed != code {
		return errors.NewInvalidLanguageError(code, "language code has surrounding whitespace")
	}
	if _, err := language.Parse(code); err != nil {
		return errors.NewInvalidLanguageError(code, "not a well-formed language tag")
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
