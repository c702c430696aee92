package types

// Language is a user-facing message language code
type Language string

const (
	LanguagePolish  Language = "pl"
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// DefaultLanguage is used until a user picks a language explicitly
const DefaultLanguage = LanguagePolish

// AllLanguages returns all supported languages
func AllLanguages() []Language {
	return []Language{LanguagePolish, LanguageEnglish, LanguageRussian}
}

// IsValid checks if the language is supported
func (l Language) IsValid() bool {
	switch l {
	case LanguagePolish, LanguageEnglish, LanguageRussian:
		return true
	default:
		return false
	}
}

// Normalize returns the language, treating empty or unknown codes as the
// default language
func (l Language) Normalize() Language {
	if !l.IsValid() {
		return DefaultLanguage
	}
	return l
}

// String returns the string representation of the language
func (l Language) String() string {
	return string(l)
}
