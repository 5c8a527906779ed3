package catalog

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Field is a tri-state partial-update slot. A zero Field requests no change,
// Clear requests removal of the target value, and Set requests a specific
// value. The three states survive JSON decoding: an absent member leaves the
// zero Field, an explicit null decodes to Clear, and anything else decodes
// to Set.
type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// Keep returns a Field requesting no change.
func Keep[T any]() Field[T] {
	return Field[T]{}
}

// Clear returns a Field requesting removal of the target value.
func Clear[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Set returns a Field requesting the given value.
func Set[T any](value T) Field[T] {
	return Field[T]{present: true, value: value}
}

// Present reports whether the field requests any change at all.
func (f Field[T]) Present() bool {
	return f.present
}

// IsClear reports whether the field requests removal.
func (f Field[T]) IsClear() bool {
	return f.present && f.null
}

// Value returns the requested value and whether one was set.
func (f Field[T]) Value() (T, bool) {
	if !f.present || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Apply resolves the field against the current value: keep returns current,
// clear returns nil, set returns the new value.
func (f Field[T]) Apply(current *T) *T {
	if !f.present {
		return current
	}
	if f.null {
		return nil
	}
	value := f.value
	return &value
}

// UnmarshalJSON is only invoked for members present in the payload, which is
// what distinguishes keep from clear.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

// MarshalJSON renders clear as null and set as the value. An absent field
// marshals as null too; callers that need to omit it must check Present.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// TranslationUpdate is a partial update for one Localization. Scalar fields
// are tri-state; the variation and substitution maps touch only the
// selector/case and name entries they mention, leaving siblings unmodified.
// A nil SubstitutionUpdate entry deletes that substitution.
type TranslationUpdate struct {
	Value         Field[string]                            `json:"value"`
	State         Field[string]                            `json:"state"`
	Variations    map[string]map[string]*TranslationUpdate `json:"variations,omitempty"`
	Substitutions map[string]*SubstitutionUpdate           `json:"substitutions,omitempty"`
}

// SubstitutionUpdate is a partial update for one Substitution.
type SubstitutionUpdate struct {
	Value           Field[string]                            `json:"value"`
	State           Field[string]                            `json:"state"`
	ArgNum          Field[int64]                             `json:"argNum"`
	FormatSpecifier Field[string]                            `json:"formatSpecifier"`
	Variations      map[string]map[string]*TranslationUpdate `json:"variations,omitempty"`
}

// UpdateValueState builds an update that sets or clears the value and state.
// A nil pointer clears the corresponding field. A non-empty value without a
// state picks up the default "translated" state, matching what sanitization
// would do anyway so callers see the final state echoed back.
func UpdateValueState(value, state *string) *TranslationUpdate {
	update := &TranslationUpdate{}
	if value != nil {
		update.Value = Set(*value)
	} else {
		update.Value = Clear[string]()
	}
	if state == nil && value != nil && *value != "" {
		state = strPtr(DefaultTranslationState)
	}
	if state != nil {
		update.State = Set(*state)
	} else {
		update.State = Clear[string]()
	}
	return update
}

// AddVariation records a nested update for one selector/case pair and
// returns the update for chaining.
func (u *TranslationUpdate) AddVariation(selector, caseName string, nested *TranslationUpdate) *TranslationUpdate {
	if u.Variations == nil {
		u.Variations = make(map[string]map[string]*TranslationUpdate)
	}
	if u.Variations[selector] == nil {
		u.Variations[selector] = make(map[string]*TranslationUpdate)
	}
	u.Variations[selector][caseName] = nested
	return u
}

// SetSubstitution records a create-or-merge update for the named substitution.
func (u *TranslationUpdate) SetSubstitution(name string, sub *SubstitutionUpdate) *TranslationUpdate {
	if u.Substitutions == nil {
		u.Substitutions = make(map[string]*SubstitutionUpdate)
	}
	u.Substitutions[name] = sub
	return u
}

// RemoveSubstitution records deletion of the named substitution.
func (u *TranslationUpdate) RemoveSubstitution(name string) *TranslationUpdate {
	return u.SetSubstitution(name, nil)
}

// AddVariation records a nested update for one selector/case pair of the
// substitution's variations.
func (u *SubstitutionUpdate) AddVariation(selector, caseName string, nested *TranslationUpdate) *SubstitutionUpdate {
	if u.Variations == nil {
		u.Variations = make(map[string]map[string]*TranslationUpdate)
	}
	if u.Variations[selector] == nil {
		u.Variations[selector] = make(map[string]*TranslationUpdate)
	}
	u.Variations[selector][caseName] = nested
	return u
}

// ApplyUpdate merges a partial update into the target localization. Touched
// entries keep their existing positions; new entries append. Update maps are
// walked in sorted key order so that appended entries land deterministically.
func ApplyUpdate(target *Localization, update *TranslationUpdate) {
	if update == nil {
		update = &TranslationUpdate{}
	}

	unit := target.StringUnit
	if unit == nil {
		unit = &StringUnit{}
	}
	unit.Value = update.Value.Apply(unit.Value)
	unit.State = update.State.Apply(unit.State)
	target.StringUnit = sanitizeStringUnit(unit)

	if target.Variations == nil {
		target.Variations = NewOrderedMap[*OrderedMap[*Localization]]()
	}
	if target.Substitutions == nil {
		target.Substitutions = NewOrderedMap[*Substitution]()
	}

	applyVariationUpdates(target.Variations, update.Variations)

	for _, name := range sortedKeys(update.Substitutions) {
		subUpdate := update.Substitutions[name]
		if subUpdate == nil {
			target.Substitutions.Delete(name)
			continue
		}
		substitution, ok := target.Substitutions.Get(name)
		if !ok {
			substitution = NewSubstitution()
		}
		applySubstitutionUpdate(substitution, subUpdate)
		if substitution.IsEmpty() {
			target.Substitutions.Delete(name)
		} else {
			target.Substitutions.Set(name, substitution)
		}
	}
}

func applySubstitutionUpdate(target *Substitution, update *SubstitutionUpdate) {
	unit := target.StringUnit
	if unit == nil {
		unit = &StringUnit{}
	}
	unit.Value = update.Value.Apply(unit.Value)
	unit.State = update.State.Apply(unit.State)
	target.StringUnit = sanitizeStringUnit(unit)

	target.ArgNum = update.ArgNum.Apply(target.ArgNum)
	target.FormatSpecifier = update.FormatSpecifier.Apply(target.FormatSpecifier)

	if target.Variations == nil {
		target.Variations = NewOrderedMap[*OrderedMap[*Localization]]()
	}
	applyVariationUpdates(target.Variations, update.Variations)
}

func applyVariationUpdates(target *Variations, updates map[string]map[string]*TranslationUpdate) {
	for _, selector := range sortedKeys(updates) {
		cases, ok := target.Get(selector)
		if !ok {
			cases = NewOrderedMap[*Localization]()
		}
		caseUpdates := updates[selector]
		for _, caseName := range sortedKeys(caseUpdates) {
			nested, ok := cases.Get(caseName)
			if !ok {
				nested = NewLocalization()
			}
			ApplyUpdate(nested, caseUpdates[caseName])
			if nested.IsEmpty() {
				cases.Delete(caseName)
			} else {
				cases.Set(caseName, nested)
			}
		}
		if cases.Len() > 0 {
			target.Set(selector, cases)
		} else {
			target.Delete(selector)
		}
	}

	// A caller-supplied update can reintroduce an excluded combination.
	if target.Has(SelectorPlural) && target.Has(SelectorDevice) {
		target.Delete(SelectorDevice)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
