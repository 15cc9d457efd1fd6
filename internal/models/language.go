package models

import (
	"fmt"
	"strings"
)

// Language partitions catalog data; every record belongs to exactly one.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHebrew  Language = "he"
)

// Languages lists the supported languages.
var Languages = []Language{LanguageEnglish, LanguageHebrew}

// ParseLanguage accepts short names ("en") and full names ("english").
func ParseLanguage(raw string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "en", "english":
		return LanguageEnglish, nil
	case "he", "hebrew":
		return LanguageHebrew, nil
	default:
		return "", fmt.Errorf("unknown language %q", raw)
	}
}

// ShortName returns the two letter storage value.
func (l Language) ShortName() string {
	return string(l)
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageHebrew
}
