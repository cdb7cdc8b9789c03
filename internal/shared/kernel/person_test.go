package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmailAddress(t *testing.T) {
	email, err := NewEmailAddress(" jigoro.kano@kwai.com ")
	require.NoError(t, err)
	require.Equal(t, "jigoro.kano@kwai.com", email.String())

	_, err = NewEmailAddress("jigoro.kano")
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestUniqueID(t *testing.T) {
	id := NewUniqueID()
	parsed, err := ParseUniqueID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.True(t, UniqueID{}.IsEmpty())

	_, err = ParseUniqueID("not-a-uuid")
	require.ErrorIs(t, err, ErrValidation)
}

func TestPassword(t *testing.T) {
	password, err := HashPassword("Nage-waza")
	require.NoError(t, err)
	require.True(t, password.Verify("Nage-waza"))
	require.False(t, password.Verify("Katame-waza"))
	require.True(t, PasswordFromHash(password.Hash()).Verify("Nage-waza"))
}

func TestText(t *testing.T) {
	text := NewText(
		LocaleText{Locale: LocaleNL, Title: "Nieuws"},
		LocaleText{Locale: LocaleEN, Title: "News"},
	)
	changed := text.WithTranslation(LocaleText{Locale: LocaleNL, Title: "Nieuwtjes"})

	nl, ok := text.Translation(LocaleNL)
	require.True(t, ok)
	require.Equal(t, "Nieuws", nl.Title)

	nl, ok = changed.Translation(LocaleNL)
	require.True(t, ok)
	require.Equal(t, "Nieuwtjes", nl.Title)
	require.Equal(t, 2, changed.Len())
	require.Equal(t, 1, changed.WithoutTranslation(LocaleEN).Len())
}
