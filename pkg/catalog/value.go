package catalog

import "strings"

// TranslationValue is the outward-facing snapshot of one Localization,
// flattened for API responses: the string unit is inlined as value/state and
// the recursive structure is carried in plain maps. Maps serialize with
// sorted keys, which is fine here since member order only matters for the
// persisted catalog file, not for responses.
type TranslationValue struct {
	Value         *string                                 `json:"value"`
	State         *string                                 `json:"state"`
	Variations    map[string]map[string]*TranslationValue `json:"variations,omitempty"`
	Substitutions map[string]*SubstitutionValue           `json:"substitutions,omitempty"`
}

// SubstitutionValue is the outward-facing snapshot of one Substitution.
type SubstitutionValue struct {
	Value           *string                                 `json:"value"`
	State           *string                                 `json:"state"`
	ArgNum          *int64                                  `json:"argNum,omitempty"`
	FormatSpecifier *string                                 `json:"formatSpecifier,omitempty"`
	Variations      map[string]map[string]*TranslationValue `json:"variations,omitempty"`
}

// TranslationRecord is the full per-key listing row: entry metadata plus a
// snapshot of every language's content.
type TranslationRecord struct {
	Key             string                       `json:"key"`
	Comment         *string                      `json:"comment"`
	ExtractionState *string                      `json:"extractionState"`
	ShouldTranslate *bool                        `json:"shouldTranslate"`
	Translations    map[string]*TranslationValue `json:"translations"`
}

// TranslationSummary is the lightweight per-key listing row.
type TranslationSummary struct {
	Key           string   `json:"key"`
	Comment       *string  `json:"comment"`
	Languages     []string `json:"languages"`
	HasVariations bool     `json:"hasVariations"`
}

// ValueFromLocalization snapshots a localization subtree.
func ValueFromLocalization(l *Localization) *TranslationValue {
	value := &TranslationValue{}
	if l == nil {
		return value
	}
	if l.StringUnit != nil {
		value.Value = copyString(l.StringUnit.Value)
		value.State = copyString(l.StringUnit.State)
	}
	if l.Variations.Len() > 0 {
		value.Variations = variationsSnapshot(l.Variations)
	}
	if l.Substitutions.Len() > 0 {
		value.Substitutions = make(map[string]*SubstitutionValue, l.Substitutions.Len())
		l.Substitutions.ForEach(func(name string, substitution *Substitution) bool {
			value.Substitutions[name] = ValueFromSubstitution(substitution)
			return true
		})
	}
	return value
}

// ValueFromSubstitution snapshots a substitution subtree.
func ValueFromSubstitution(s *Substitution) *SubstitutionValue {
	value := &SubstitutionValue{}
	if s == nil {
		return value
	}
	if s.StringUnit != nil {
		value.Value = copyString(s.StringUnit.Value)
		value.State = copyString(s.StringUnit.State)
	}
	if s.ArgNum != nil {
		n := *s.ArgNum
		value.ArgNum = &n
	}
	value.FormatSpecifier = copyString(s.FormatSpecifier)
	if s.Variations.Len() > 0 {
		value.Variations = variationsSnapshot(s.Variations)
	}
	return value
}

func variationsSnapshot(variations *Variations) map[string]map[string]*TranslationValue {
	snapshot := make(map[string]map[string]*TranslationValue, variations.Len())
	variations.ForEach(func(selector string, cases *OrderedMap[*Localization]) bool {
		converted := make(map[string]*TranslationValue, cases.Len())
		cases.ForEach(func(caseName string, nested *Localization) bool {
			converted[caseName] = ValueFromLocalization(nested)
			return true
		})
		snapshot[selector] = converted
		return true
	})
	return snapshot
}

// UpdateFromValue turns a snapshot back into a full update, with every field
// explicitly set or cleared. Re-applying a snapshot therefore reproduces it
// exactly, which is how rename-style copies move content between languages.
func UpdateFromValue(value *TranslationValue) *TranslationUpdate {
	update := &TranslationUpdate{
		Value: setOrClear(value.Value),
		State: setOrClear(value.State),
	}
	for selector, cases := range value.Variations {
		for caseName, nested := range cases {
			update.AddVariation(selector, caseName, UpdateFromValue(nested))
		}
	}
	for name, substitution := range value.Substitutions {
		update.SetSubstitution(name, updateFromSubstitutionValue(substitution))
	}
	return update
}

func updateFromSubstitutionValue(value *SubstitutionValue) *SubstitutionUpdate {
	update := &SubstitutionUpdate{
		Value:           setOrClear(value.Value),
		State:           setOrClear(value.State),
		FormatSpecifier: setOrClear(value.FormatSpecifier),
	}
	if value.ArgNum != nil {
		update.ArgNum = Set(*value.ArgNum)
	} else {
		update.ArgNum = Clear[int64]()
	}
	for selector, cases := range value.Variations {
		for caseName, nested := range cases {
			update.AddVariation(selector, caseName, UpdateFromValue(nested))
		}
	}
	return update
}

func setOrClear(value *string) Field[string] {
	if value == nil {
		return Clear[string]()
	}
	return Set(*value)
}

// localizationContains reports whether the lowercased query occurs in any
// translation value anywhere in the subtree. The query must already be
// lowercased.
func localizationContains(l *Localization, query string) bool {
	if l == nil {
		return false
	}
	if l.StringUnit != nil && l.StringUnit.Value != nil &&
		strings.Contains(strings.ToLower(*l.StringUnit.Value), query) {
		return true
	}
	found := false
	l.Variations.ForEach(func(_ string, cases *OrderedMap[*Localization]) bool {
		cases.ForEach(func(_ string, nested *Localization) bool {
			found = localizationContains(nested, query)
			return !found
		})
		return !found
	})
	if found {
		return true
	}
	l.Substitutions.ForEach(func(_ string, substitution *Substitution) bool {
		found = substitutionContains(substitution, query)
		return !found
	})
	return found
}

func substitutionContains(s *Substitution, query string) bool {
	if s == nil {
		return false
	}
	if s.StringUnit != nil && s.StringUnit.Value != nil &&
		strings.Contains(strings.ToLower(*s.StringUnit.Value), query) {
		return true
	}
	found := false
	s.Variations.ForEach(func(_ string, cases *OrderedMap[*Localization]) bool {
		cases.ForEach(func(_ string, nested *Localization) bool {
			found = localizationContains(nested, query)
			return !found
		})
		return !found
	})
	return found
}

// EntryContains reports whether the query matches the key or any translation
// value of the entry. Matching is case-insensitive substring.
func EntryContains(key string, entry *Entry, query string) bool {
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(key), query) {
		return true
	}
	found := false
	entry.Localizations.ForEach(func(_ string, localization *Localization) bool {
		found = localizationContains(localization, query)
		return !found
	})
	return found
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
