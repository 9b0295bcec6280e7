package i18n

import "strings"

// Language is one of the two languages the course is written in.
type Language string

const (
	Spanish Language = "es"
	English Language = "en"
)

// Default is the language a new visitor starts with.
const Default = Spanish

// All lists the supported languages in presentation order.
var All = []Language{Spanish, English}

// Toggle returns the other language. Unknown values toggle from Default.
func (l Language) Toggle() Language {
	if l == English {
		return Spanish
	}
	if l == Spanish {
		return English
	}
	return Default.Toggle()
}

// Valid reports whether l is a supported language tag.
func (l Language) Valid() bool {
	return l == Spanish || l == English
}

func (l Language) String() string { return string(l) }

// Parse converts a tag such as "en" or "ES" to a Language, falling back to
// Default for anything unrecognised.
func Parse(s string) Language {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if l.Valid() {
		return l
	}
	return Default
}
