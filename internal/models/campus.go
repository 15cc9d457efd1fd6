package models

// Campus is a physical campus; names are stored in both languages.
type Campus struct {
	ID          int64  `db:"id" json:"id"`
	EnglishName string `db:"english_name" json:"english_name"`
	HebrewName  string `db:"hebrew_name" json:"hebrew_name"`
}

// NameFor returns the campus name in the requested language.
func (c Campus) NameFor(language Language) string {
	if language == LanguageHebrew {
		return c.HebrewName
	}
	return c.EnglishName
}

// Scope is the (campus, language) namespace all catalog queries run in.
type Scope struct {
	Campus   string   `json:"campus" form:"campus" validate:"required"`
	Language Language `json:"language" form:"language" validate:"required,oneof=en he"`
}
