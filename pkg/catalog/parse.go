package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/stringcat/stringcat/pkg/errors"
)

// Parse reads a catalog document from its serialized JSON form. Member order
// at every level is recorded so that Write can reproduce the input bytes for
// untouched regions. Unknown members are skipped, and a trailing newline on
// the input is remembered for round-tripping.
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, errors.NewParseError("json", "", err.Error(), err)
	}

	catalog := NewCatalog()
	catalog.Version = ""
	catalog.SourceLanguage = ""
	catalog.trailingNewline = bytes.HasSuffix(data, []byte("\n"))

	for dec.More() {
		name, err := readMemberName(dec)
		if err != nil {
			return nil, errors.NewParseError("json", "", err.Error(), err)
		}
		catalog.fieldOrder = append(catalog.fieldOrder, name)

		switch name {
		case "version":
			catalog.Version, err = readString(dec, name)
		case "sourceLanguage":
			catalog.SourceLanguage, err = readString(dec, name)
		case "formatVersion":
			catalog.FormatVersion, err = readFormatVersion(dec)
		case "strings":
			catalog.Strings, err = readStrings(dec)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return nil, errors.NewParseError("json", "", err.Error(), err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, errors.NewParseError("json", "", err.Error(), err)
	}

	if catalog.Version == "" {
		catalog.Version = DefaultVersion
	}
	if catalog.SourceLanguage == "" {
		catalog.SourceLanguage = DefaultSourceLanguage
	}
	if catalog.Strings == nil {
		catalog.Strings = NewOrderedMap[*Entry]()
	}
	return catalog, nil
}

// ParseFile parses catalog bytes read from the named file, attributing parse
// failures to that file.
func ParseFile(path string, data []byte) (*Catalog, error) {
	catalog, err := Parse(data)
	if err != nil {
		var parseErr *errors.ParseError
		if ok := asParseError(err, &parseErr); ok {
			parseErr.File = path
			return nil, parseErr
		}
		return nil, errors.WrapParse("json", path, err)
	}
	return catalog, nil
}

func asParseError(err error, target **errors.ParseError) bool {
	pe, ok := err.(*errors.ParseError)
	if ok {
		*target = pe
	}
	return ok
}

func readStrings(dec *json.Decoder) (*OrderedMap[*Entry], error) {
	entries := NewOrderedMap[*Entry]()
	if null, err := beginObject(dec, "strings"); err != nil || null {
		return entries, err
	}
	for dec.More() {
		key, err := readMemberName(dec)
		if err != nil {
			return nil, err
		}
		entry, err := readEntry(dec)
		if err != nil {
			return nil, fmt.Errorf("string %q: %w", key, err)
		}
		entries.Set(key, entry)
	}
	return entries, expectDelim(dec, '}')
}

func readEntry(dec *json.Decoder) (*Entry, error) {
	entry := NewEntry()
	if null, err := beginObject(dec, "entry"); err != nil || null {
		return entry, err
	}
	for dec.More() {
		name, err := readMemberName(dec)
		if err != nil {
			return nil, err
		}
		entry.fieldOrder = append(entry.fieldOrder, name)

		switch name {
		case "comment":
			entry.Comment, err = readOptionalString(dec, name)
		case "extractionState":
			entry.ExtractionState, err = readOptionalString(dec, name)
		case "shouldTranslate":
			entry.ShouldTranslate, err = readOptionalBool(dec, name)
		case "localizations":
			entry.Localizations, err = readLocalizations(dec)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return nil, err
		}
	}
	return entry, expectDelim(dec, '}')
}

func readLocalizations(dec *json.Decoder) (*OrderedMap[*Localization], error) {
	localizations := NewOrderedMap[*Localization]()
	if null, err := beginObject(dec, "localizations"); err != nil || null {
		return localizations, err
	}
	for dec.More() {
		code, err := readMemberName(dec)
		if err != nil {
			return nil, err
		}
		localization, err := readLocalization(dec)
		if err != nil {
			return nil, fmt.Errorf("localization %q: %w", code, err)
		}
		localizations.Set(code, localization)
	}
	return localizations, expectDelim(dec, '}')
}

func readLocalization(dec *json.Decoder) (*Localization, error) {
	localization := NewLocalization()
	if null, err := beginObject(dec, "localization"); err != nil || null {
		return localization, err
	}
	for dec.More() {
		name, err := readMemberName(dec)
		if err != nil {
			return nil, err
		}
		localization.fieldOrder = append(localization.fieldOrder, name)

		switch name {
		case "stringUnit":
			localization.StringUnit, err = readStringUnit(dec)
		case "substitutions":
			localization.Substitutions, err = readSubstitutions(dec)
		case "variations":
			localization.Variations, err = readVariations(dec)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return nil, err
		}
	}
	return localization, expectDelim(dec, '}')
}

func readVariations(dec *json.Decoder) (*Variations, error) {
	variations := NewOrderedMap[*OrderedMap[*Localization]]()
	if null, err := beginObject(dec, "variations"); err != nil || null {
		return variations, err
	}
	for dec.More() {
		selector, err := readMemberName(dec)
		if err != nil {
			return nil, err
		}
		cases, err := readLocalizations(dec)
		if err != nil {
			return nil, fmt.Errorf("variation %q: %w", selector, err)
		}
		variations.Set(selector, cases)
	}
	return variations, expectDelim(dec, '}')
}

func readSubstitutions(dec *json.Decoder) (*OrderedMap[*Substitution], error) {
	substitutions := NewOrderedMap[*Substitution]()
	if null, err := beginObject(dec, "substitutions"); err != nil || null {
		return substitutions, err
	}
	for dec.More() {
		name, err := readMemberName(dec)
		if err != nil {
			return nil, err
		}
		substitution, err := readSubstitution(dec)
		if err != nil {
			return nil, fmt.Errorf("substitution %q: %w", name, err)
		}
		substitutions.Set(name, substitution)
	}
	return substitutions, expectDelim(dec, '}')
}

func readSubstitution(dec *json.Decoder) (*Substitution, error) {
	substitution := NewSubstitution()
	if null, err := beginObject(dec, "substitution"); err != nil || null {
		return substitution, err
	}
	for dec.More() {
		name, err := readMemberName(dec)
		if err != nil {
			return nil, err
		}
		substitution.fieldOrder = append(substitution.fieldOrder, name)

		switch name {
		case "stringUnit":
			substitution.StringUnit, err = readStringUnit(dec)
		case "argNum":
			substitution.ArgNum, err = readOptionalInt(dec, name)
		case "formatSpecifier":
			substitution.FormatSpecifier, err = readOptionalString(dec, name)
		case "variations":
			substitution.Variations, err = readVariations(dec)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return nil, err
		}
	}
	return substitution, expectDelim(dec, '}')
}

func readStringUnit(dec *json.Decoder) (*StringUnit, error) {
	unit := &StringUnit{}
	if null, err := beginObject(dec, "stringUnit"); err != nil {
		return nil, err
	} else if null {
		return nil, nil
	}
	for dec.More() {
		name, err := readMemberName(dec)
		if err != nil {
			return nil, err
		}
		unit.fieldOrder = append(unit.fieldOrder, name)

		switch name {
		case "state":
			unit.State, err = readOptionalString(dec, name)
		case "value":
			unit.Value, err = readOptionalString(dec, name)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return nil, err
		}
	}
	return unit, expectDelim(dec, '}')
}

func readFormatVersion(dec *json.Decoder) (*FormatVersion, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("formatVersion: %w", err)
	}
	switch v := tok.(type) {
	case string:
		return FormatVersionText(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return FormatVersionText(v.String()), nil
		}
		return FormatVersionNumber(n), nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("formatVersion: unexpected %T value", tok)
	}
}

// beginObject consumes an opening brace, or a null. It reports null via its
// first return so callers can treat "member": null as an absent object.
func beginObject(dec *json.Decoder, context string) (bool, error) {
	tok, err := dec.Token()
	if err != nil {
		return false, fmt.Errorf("%s: %w", context, err)
	}
	if tok == nil {
		return true, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return false, fmt.Errorf("%s: expected object, found %v", context, tok)
	}
	return false, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, found %v", want, tok)
	}
	return nil
}

func readMemberName(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	name, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected member name, found %v", tok)
	}
	return name, nil
}

func readString(dec *json.Decoder, context string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%s: %w", context, err)
	}
	if tok == nil {
		return "", nil
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, found %v", context, tok)
	}
	return s, nil
}

func readOptionalString(dec *json.Decoder, context string) (*string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	if tok == nil {
		return nil, nil
	}
	s, ok := tok.(string)
	if !ok {
		return nil, fmt.Errorf("%s: expected string, found %v", context, tok)
	}
	return &s, nil
}

func readOptionalBool(dec *json.Decoder, context string) (*bool, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	if tok == nil {
		return nil, nil
	}
	b, ok := tok.(bool)
	if !ok {
		return nil, fmt.Errorf("%s: expected boolean, found %v", context, tok)
	}
	return &b, nil
}

func readOptionalInt(dec *json.Decoder, context string) (*int64, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	if tok == nil {
		return nil, nil
	}
	num, ok := tok.(json.Number)
	if !ok {
		return nil, fmt.Errorf("%s: expected number, found %v", context, tok)
	}
	n, err := num.Int64()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return &n, nil
}

// skipValue consumes one complete JSON value of any shape.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("unexpected end of input")
			}
			return err
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}
