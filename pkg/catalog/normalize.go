package catalog

import "strings"

// selectorContext tracks where in the variation tree normalization currently
// sits. Device variations are only legal at the top of a localization; under
// a plural or device case the device selector is dropped.
type selectorContext int

const (
	contextTop selectorContext = iota
	contextUnderPlural
	contextUnderDevice
)

func (c selectorContext) childContext(selector string) selectorContext {
	switch selector {
	case SelectorPlural:
		return contextUnderPlural
	case SelectorDevice:
		return contextUnderDevice
	default:
		return c
	}
}

// Normalize enforces the catalog invariants in place: blank version and
// source language fall back to defaults, every string unit is sanitized,
// empty localizations and substitutions are pruned bottom-up, illegal
// variation-selector combinations are dropped, and entries left with no
// localizations and no metadata are removed.
//
// Normalize is idempotent. Running it again on its own output changes
// nothing.
func Normalize(c *Catalog) {
	if strings.TrimSpace(c.Version) == "" {
		c.Version = DefaultVersion
	}
	if strings.TrimSpace(c.SourceLanguage) == "" {
		c.SourceLanguage = DefaultSourceLanguage
	}
	if c.Strings == nil {
		c.Strings = NewOrderedMap[*Entry]()
	}

	c.Strings.retain(func(_ string, entry *Entry) bool {
		if entry.Localizations == nil {
			entry.Localizations = NewOrderedMap[*Localization]()
		}
		entry.Localizations.retain(func(_ string, localization *Localization) bool {
			return !normalizeLocalization(localization, contextTop)
		})
		return entry.Localizations.Len() > 0 || entry.HasMetadata()
	})
}

// normalizeLocalization repairs one localization subtree and reports whether
// it ended up empty.
func normalizeLocalization(l *Localization, ctx selectorContext) bool {
	if l == nil {
		return true
	}
	l.StringUnit = sanitizeStringUnit(l.StringUnit)
	if l.Substitutions == nil {
		l.Substitutions = NewOrderedMap[*Substitution]()
	}
	if l.Variations == nil {
		l.Variations = NewOrderedMap[*OrderedMap[*Localization]]()
	}

	normalizeVariations(l.Variations, ctx)

	l.Substitutions.retain(func(_ string, substitution *Substitution) bool {
		return !normalizeSubstitution(substitution, ctx)
	})

	return l.IsEmpty()
}

func normalizeSubstitution(s *Substitution, ctx selectorContext) bool {
	if s == nil {
		return true
	}
	s.StringUnit = sanitizeStringUnit(s.StringUnit)
	if s.Variations == nil {
		s.Variations = NewOrderedMap[*OrderedMap[*Localization]]()
	}
	normalizeVariations(s.Variations, ctx)
	return s.IsEmpty()
}

// normalizeVariations prunes empty cases, drops selectors whose case maps
// emptied out, and then enforces selector exclusivity: plural wins over
// device at the same level, and device never nests under a plural or device
// case. Exclusivity runs after pruning so that a plural selector emptied by
// pruning no longer excludes a sibling device selector.
func normalizeVariations(variations *Variations, ctx selectorContext) {
	variations.retain(func(selector string, cases *OrderedMap[*Localization]) bool {
		child := ctx.childContext(selector)
		cases.retain(func(_ string, nested *Localization) bool {
			return !normalizeLocalization(nested, child)
		})
		return cases.Len() > 0
	})

	if ctx != contextTop {
		variations.Delete(SelectorDevice)
		return
	}
	if variations.Has(SelectorPlural) && variations.Has(SelectorDevice) {
		variations.Delete(SelectorDevice)
	}
}

// sanitizeStringUnit applies the unit-level repair rules and returns nil when
// nothing with content remains. Whitespace-only values and states are treated
// as absent, and a value without a state gains the default "translated"
// state. A unit left with only a state still has content, which is how
// placeholder units like {state: "needs-translation"} survive.
func sanitizeStringUnit(u *StringUnit) *StringUnit {
	if u == nil {
		return nil
	}
	if isBlank(u.Value) {
		u.Value = nil
	}
	if isBlank(u.State) {
		u.State = nil
	}
	if u.Value != nil && u.State == nil {
		u.State = strPtr(DefaultTranslationState)
	}
	if !u.HasContent() {
		return nil
	}
	return u
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
