package jsonapi

import "github.com/fbraem/kwai/internal/shared/kernel"

// TextAttributes is the representation of one translation of a text.
type TextAttributes struct {
	Locale  string `json:"locale"`
	Format  string `json:"format"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// NewTextAttributes converts all translations of text.
func NewTextAttributes(text kernel.Text) []TextAttributes {
	translations := text.All()
	texts := make([]TextAttributes, 0, len(translations))
	for _, translation := range translations {
		texts = append(texts, TextAttributes{
			Locale:  string(translation.Locale),
			Format:  string(translation.Format),
			Title:   translation.Title,
			Summary: translation.Summary,
			Content: translation.Content,
		})
	}
	return texts
}
