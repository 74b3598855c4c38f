package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Full word forms users commonly pass that BCP 47 parsing rejects.
var wordForms = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
}

// ToISO2 converts a language hint (2- or 3-letter code, BCP 47 tag, or a
// common word form like "english") to ISO 639-1. Returns empty string for
// unrecognized input.
func ToISO2(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ""
	}
	if code, ok := wordForms[hint]; ok {
		return code
	}
	tag, err := language.Parse(hint)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	code := base.String()
	if len(code) != 2 {
		return ""
	}
	return code
}

// Describe returns a human-readable name for the hint, for logging. Falls
// back to the input when the hint is unrecognized.
func Describe(hint string) string {
	code := ToISO2(hint)
	if code == "" {
		return hint
	}
	tag, err := language.Parse(code)
	if err != nil {
		return hint
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return hint
}
