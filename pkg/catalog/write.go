package catalog

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode"
)

// Write serializes the catalog in Apple's .xcstrings dialect: two-space
// indentation, a space on both sides of the member colon, empty objects
// collapsed to {}, and control characters escaped as lowercase \u00xx.
//
// Members parsed from an existing file keep their recorded positions; members
// added since parse are appended in canonical order. A parsed trailing
// newline is reproduced, and none is added for catalogs built in memory.
func Write(c *Catalog) []byte {
	w := &appleWriter{}
	w.writeCatalog(c, 0)
	if c.trailingNewline {
		w.buf.WriteByte('\n')
	}
	return w.buf.Bytes()
}

type appleWriter struct {
	buf bytes.Buffer
}

// member pairs a JSON member name with the function that renders its value.
type member struct {
	name  string
	write func(indent int)
}

func (w *appleWriter) writeCatalog(c *Catalog, indent int) {
	w.writeObject(indent, orderMembers(c.fieldOrder, catalogFieldOrder, []member{
		{"version", func(i int) { w.writeString(c.Version) }},
		w.formatVersionMember(c.FormatVersion),
		{"sourceLanguage", func(i int) { w.writeString(c.SourceLanguage) }},
		{"strings", func(i int) { w.writeStrings(c.Strings, i) }},
	}))
}

func (w *appleWriter) formatVersionMember(v *FormatVersion) member {
	if v == nil {
		return member{name: "formatVersion"}
	}
	return member{"formatVersion", func(i int) {
		if v.IsText {
			w.writeString(v.Text)
		} else {
			w.buf.WriteString(strconv.FormatInt(v.Number, 10))
		}
	}}
}

func (w *appleWriter) writeStrings(entries *OrderedMap[*Entry], indent int) {
	members := make([]member, 0, entries.Len())
	entries.ForEach(func(key string, entry *Entry) bool {
		members = append(members, member{key, func(i int) { w.writeEntry(entry, i) }})
		return true
	})
	w.writeObject(indent, members)
}

func (w *appleWriter) writeEntry(e *Entry, indent int) {
	w.writeObject(indent, orderMembers(e.fieldOrder, entryFieldOrder, []member{
		optionalString(w, "comment", e.Comment),
		optionalString(w, "extractionState", e.ExtractionState),
		optionalBool(w, "shouldTranslate", e.ShouldTranslate),
		nonEmptyObject("localizations", e.Localizations.Len(), func(i int) {
			w.writeLocalizations(e.Localizations, i)
		}),
	}))
}

func (w *appleWriter) writeLocalizations(localizations *OrderedMap[*Localization], indent int) {
	members := make([]member, 0, localizations.Len())
	localizations.ForEach(func(code string, localization *Localization) bool {
		members = append(members, member{code, func(i int) { w.writeLocalization(localization, i) }})
		return true
	})
	w.writeObject(indent, members)
}

func (w *appleWriter) writeLocalization(l *Localization, indent int) {
	w.writeObject(indent, orderMembers(l.fieldOrder, localizationFieldOrder, []member{
		stringUnitMember(w, l.StringUnit),
		nonEmptyObject("substitutions", l.Substitutions.Len(), func(i int) {
			w.writeSubstitutions(l.Substitutions, i)
		}),
		nonEmptyObject("variations", l.Variations.Len(), func(i int) {
			w.writeVariations(l.Variations, i)
		}),
	}))
}

func (w *appleWriter) writeVariations(variations *Variations, indent int) {
	members := make([]member, 0, variations.Len())
	variations.ForEach(func(selector string, cases *OrderedMap[*Localization]) bool {
		members = append(members, member{selector, func(i int) { w.writeLocalizations(cases, i) }})
		return true
	})
	w.writeObject(indent, members)
}

func (w *appleWriter) writeSubstitutions(substitutions *OrderedMap[*Substitution], indent int) {
	members := make([]member, 0, substitutions.Len())
	substitutions.ForEach(func(name string, substitution *Substitution) bool {
		members = append(members, member{name, func(i int) { w.writeSubstitution(substitution, i) }})
		return true
	})
	w.writeObject(indent, members)
}

func (w *appleWriter) writeSubstitution(s *Substitution, indent int) {
	var argNum member
	if s.ArgNum == nil {
		argNum = member{name: "argNum"}
	} else {
		n := *s.ArgNum
		argNum = member{"argNum", func(i int) { w.buf.WriteString(strconv.FormatInt(n, 10)) }}
	}
	w.writeObject(indent, orderMembers(s.fieldOrder, substitutionFieldOrder, []member{
		stringUnitMember(w, s.StringUnit),
		argNum,
		optionalString(w, "formatSpecifier", s.FormatSpecifier),
		nonEmptyObject("variations", s.Variations.Len(), func(i int) {
			w.writeVariations(s.Variations, i)
		}),
	}))
}

func (w *appleWriter) writeStringUnit(u *StringUnit, indent int) {
	w.writeObject(indent, orderMembers(u.fieldOrder, stringUnitFieldOrder, []member{
		optionalString(w, "state", u.State),
		optionalString(w, "value", u.Value),
	}))
}

func stringUnitMember(w *appleWriter, u *StringUnit) member {
	if u == nil {
		return member{name: "stringUnit"}
	}
	return member{"stringUnit", func(i int) { w.writeStringUnit(u, i) }}
}

func optionalString(w *appleWriter, name string, value *string) member {
	if value == nil {
		return member{name: name}
	}
	v := *value
	return member{name, func(i int) { w.writeString(v) }}
}

func optionalBool(w *appleWriter, name string, value *bool) member {
	if value == nil {
		return member{name: name}
	}
	v := *value
	return member{name, func(i int) { fmt.Fprintf(&w.buf, "%t", v) }}
}

func nonEmptyObject(name string, size int, write func(indent int)) member {
	if size == 0 {
		return member{name: name}
	}
	return member{name, write}
}

// orderMembers arranges present members: recorded parse order first, then any
// members added since parse in canonical order. A member with a nil write
// function is absent and dropped.
func orderMembers(recorded, canonical []string, candidates []member) []member {
	present := make(map[string]member, len(candidates))
	for _, m := range candidates {
		if m.write != nil {
			present[m.name] = m
		}
	}

	ordered := make([]member, 0, len(present))
	emitted := make(map[string]bool, len(present))
	appendName := func(name string) {
		if emitted[name] {
			return
		}
		if m, ok := present[name]; ok {
			ordered = append(ordered, m)
			emitted[name] = true
		}
	}
	for _, name := range recorded {
		appendName(name)
	}
	for _, name := range canonical {
		appendName(name)
	}
	// Anything left was neither parsed nor canonical; keep declaration order.
	for _, m := range candidates {
		if m.write != nil {
			appendName(m.name)
		}
	}
	return ordered
}

func (w *appleWriter) writeObject(indent int, members []member) {
	if len(members) == 0 {
		w.buf.WriteString("{}")
		return
	}
	w.buf.WriteString("{\n")
	for i, m := range members {
		w.writeIndent(indent + 1)
		w.writeString(m.name)
		w.buf.WriteString(" : ")
		m.write(indent + 1)
		if i < len(members)-1 {
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte('\n')
	}
	w.writeIndent(indent)
	w.buf.WriteByte('}')
}

func (w *appleWriter) writeIndent(level int) {
	for i := 0; i < level; i++ {
		w.buf.WriteString("  ")
	}
}

func (w *appleWriter) writeString(s string) {
	w.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			w.buf.WriteString(`\"`)
		case '\\':
			w.buf.WriteString(`\\`)
		case '\n':
			w.buf.WriteString(`\n`)
		case '\r':
			w.buf.WriteString(`\r`)
		case '\t':
			w.buf.WriteString(`\t`)
		case '\b':
			w.buf.WriteString(`\b`)
		case '\f':
			w.buf.WriteString(`\f`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&w.buf, `\u%04x`, r)
			} else {
				w.buf.WriteRune(r)
			}
		}
	}
	w.buf.WriteByte('"')
}
