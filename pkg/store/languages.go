package store

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageNames maps each parseable language code to its English display
// name, for listing surfaces. Codes that don't parse or have no known name
// are left out.
func LanguageNames(codes []string) map[string]string {
	names := make(map[string]string, len(codes))
	namer := display.English.Tags()
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		if name := namer.Name(tag); name != "" {
			names[code] = name
		}
	}
	return names
}
