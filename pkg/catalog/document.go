// Package catalog implements the in-memory document model for Apple String
// Catalog (.xcstrings) files, together with the normalization rules, the
// partial-update merge engine, and a format-preserving serializer.
//
// The model mirrors the persisted JSON shape: a Catalog holds an ordered
// mapping of string keys to Entries, an Entry holds per-language
// Localizations, and a Localization recursively branches into variations
// (plural or device cases) and named substitutions. All mappings preserve
// member insertion order because re-serializing an unmodified document must
// reproduce its bytes.
package catalog

const (
	// DefaultVersion is the catalog version written when none is present.
	DefaultVersion = "1.0"

	// DefaultSourceLanguage is assumed when a catalog names no source language.
	DefaultSourceLanguage = "en"

	// DefaultTranslationState is assigned to a string unit that has a value
	// but no explicit state.
	DefaultTranslationState = "translated"

	// PlaceholderTranslationState marks localizations inserted by AddLanguage
	// that still need a value.
	PlaceholderTranslationState = "needs-translation"
)

// Variation selectors understood by the selector-nesting rules.
const (
	SelectorPlural = "plural"
	SelectorDevice = "device"
)

// Canonical member orders, used for fields added after parse. Members that
// were present in the parsed file keep their original positions instead.
var (
	catalogFieldOrder      = []string{"version", "formatVersion", "sourceLanguage", "strings"}
	entryFieldOrder        = []string{"comment", "extractionState", "shouldTranslate", "localizations"}
	localizationFieldOrder = []string{"stringUnit", "substitutions", "variations"}
	substitutionFieldOrder = []string{"stringUnit", "argNum", "formatSpecifier", "variations"}
	stringUnitFieldOrder   = []string{"state", "value"}
)

// FormatVersion is the catalog's optional formatVersion member, which Apple
// has written both as a string and as an integer.
type FormatVersion struct {
	Text   string
	Number int64
	IsText bool
}

// FormatVersionText creates a string-form FormatVersion.
func FormatVersionText(text string) *FormatVersion {
	return &FormatVersion{Text: text, IsText: true}
}

// FormatVersionNumber creates an integer-form FormatVersion.
func FormatVersionNumber(number int64) *FormatVersion {
	return &FormatVersion{Number: number}
}

// Catalog is the top-level document for one .xcstrings file.
type Catalog struct {
	Version        string
	FormatVersion  *FormatVersion
	SourceLanguage string
	Strings        *OrderedMap[*Entry]

	// fieldOrder records top-level member order as parsed, so a file that
	// placed "version" after "strings" round-trips byte-exactly.
	fieldOrder []string

	// trailingNewline records whether the parsed bytes ended with '\n'.
	trailingNewline bool
}

// NewCatalog creates an empty catalog with default version and source language.
func NewCatalog() *Catalog {
	return &Catalog{
		Version:        DefaultVersion,
		SourceLanguage: DefaultSourceLanguage,
		Strings:        NewOrderedMap[*Entry](),
	}
}

// Entry is the per-key record: optional metadata plus one Localization per
// language.
type Entry struct {
	Comment         *string
	ExtractionState *string
	ShouldTranslate *bool
	Localizations   *OrderedMap[*Localization]

	fieldOrder []string
}

// NewEntry creates an empty entry.
func NewEntry() *Entry {
	return &Entry{
		Localizations: NewOrderedMap[*Localization](),
	}
}

// HasMetadata reports whether the entry carries a comment, extraction state,
// or shouldTranslate marker. Entries with metadata survive normalization
// pruning even with zero localizations.
func (e *Entry) HasMetadata() bool {
	return e.Comment != nil || e.ExtractionState != nil || e.ShouldTranslate != nil
}

// Variations maps a selector ("plural" or "device") to its named cases, each
// case being a full Localization. The structure is an owned tree: cases nest
// further variations but never reference their ancestors.
type Variations = OrderedMap[*OrderedMap[*Localization]]

// Localization is the per-language content for one entry.
type Localization struct {
	StringUnit    *StringUnit
	Substitutions *OrderedMap[*Substitution]
	Variations    *Variations

	fieldOrder []string
}

// NewLocalization creates an empty localization.
func NewLocalization() *Localization {
	return &Localization{
		Substitutions: NewOrderedMap[*Substitution](),
		Variations:    NewOrderedMap[*OrderedMap[*Localization]](),
	}
}

// IsEmpty reports whether the localization has no string unit content, no
// variations, and no substitutions. Empty localizations are pruned.
func (l *Localization) IsEmpty() bool {
	if l == nil {
		return true
	}
	return !l.StringUnit.HasContent() && l.Variations.Len() == 0 && l.Substitutions.Len() == 0
}

// Substitution is a named inline placeholder that carries its own phrasing
// variants plus optional format metadata.
type Substitution struct {
	StringUnit      *StringUnit
	ArgNum          *int64
	FormatSpecifier *string
	Variations      *Variations

	fieldOrder []string
}

// NewSubstitution creates an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{
		Variations: NewOrderedMap[*OrderedMap[*Localization]](),
	}
}

// IsEmpty reports whether the substitution carries nothing worth keeping.
func (s *Substitution) IsEmpty() bool {
	if s == nil {
		return true
	}
	return !s.StringUnit.HasContent() &&
		s.Variations.Len() == 0 &&
		s.ArgNum == nil &&
		s.FormatSpecifier == nil
}

// StringUnit is a single translated value with its review state.
type StringUnit struct {
	Value *string
	State *string

	fieldOrder []string
}

// HasContent reports whether the unit carries a value or a state after
// sanitization. A unit with only a state is legitimate content: language
// placeholders persist as {state: "needs-translation"} with no value.
func (u *StringUnit) HasContent() bool {
	if u == nil {
		return false
	}
	return u.Value != nil || u.State != nil
}

// Languages returns the set of language codes appearing in any entry,
// plus the source language.
func (c *Catalog) Languages() map[string]bool {
	languages := map[string]bool{c.SourceLanguage: true}
	c.Strings.ForEach(func(_ string, entry *Entry) bool {
		entry.Localizations.ForEach(func(code string, _ *Localization) bool {
			languages[code] = true
			return true
		})
		return true
	})
	return languages
}

// HasLanguage reports whether code is the source language or appears in any
// entry's localizations.
func (c *Catalog) HasLanguage(code string) bool {
	if code == c.SourceLanguage {
		return true
	}
	found := false
	c.Strings.ForEach(func(_ string, entry *Entry) bool {
		if entry.Localizations.Has(code) {
			found = true
			return false
		}
		return true
	})
	return found
}

func strPtr(s string) *string { return &s }
