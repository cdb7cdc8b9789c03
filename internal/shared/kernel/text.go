package kernel

import "fmt"

// Locale of a text.
type Locale string

const (
	LocaleNL Locale = "nl"
	LocaleEN Locale = "en"
)

// ParseLocale validates a locale code.
func ParseLocale(raw string) (Locale, error) {
	switch Locale(raw) {
	case LocaleNL, LocaleEN:
		return Locale(raw), nil
	}
	return "", fmt.Errorf("%w: unsupported locale %q", ErrValidation, raw)
}

// DocumentFormat tells how the content of a text must be rendered.
type DocumentFormat string

const (
	FormatHTML     DocumentFormat = "html"
	FormatMarkdown DocumentFormat = "md"
)

// ParseDocumentFormat validates a format code.
func ParseDocumentFormat(raw string) (DocumentFormat, error) {
	switch DocumentFormat(raw) {
	case FormatHTML, FormatMarkdown:
		return DocumentFormat(raw), nil
	}
	return "", fmt.Errorf("%w: unsupported format %q", ErrValidation, raw)
}

// LocaleText is the translation of a text in one locale.
type LocaleText struct {
	Locale        Locale
	Format        DocumentFormat
	Title         string
	Content       string
	Summary       string
	Author        Owner
	TraceableTime TraceableTime
}

// Text groups the translations of a text. At most one translation exists per locale.
type Text struct {
	translations []LocaleText
}

// NewText creates a text. A later translation replaces an earlier one with the same locale.
func NewText(translations ...LocaleText) Text {
	var text Text
	for _, translation := range translations {
		text = text.WithTranslation(translation)
	}
	return text
}

// Translation returns the translation for locale.
func (t Text) Translation(locale Locale) (LocaleText, bool) {
	for _, translation := range t.translations {
		if translation.Locale == locale {
			return translation, true
		}
	}
	return LocaleText{}, false
}

// WithTranslation returns a new text with translation added or replaced.
func (t Text) WithTranslation(translation LocaleText) Text {
	translations := make([]LocaleText, 0, len(t.translations)+1)
	replaced := false
	for _, existing := range t.translations {
		if existing.Locale == translation.Locale {
			translations = append(translations, translation)
			replaced = true
			continue
		}
		translations = append(translations, existing)
	}
	if !replaced {
		translations = append(translations, translation)
	}
	return Text{translations: translations}
}

// WithoutTranslation returns a new text without the translation for locale.
func (t Text) WithoutTranslation(locale Locale) Text {
	translations := make([]LocaleText, 0, len(t.translations))
	for _, existing := range t.translations {
		if existing.Locale != locale {
			translations = append(translations, existing)
		}
	}
	return Text{translations: translations}
}

// All returns a copy of the translations in insertion order.
func (t Text) All() []LocaleText {
	return append([]LocaleText(nil), t.translations...)
}

func (t Text) Len() int { return len(t.translations) }
