package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

func TestTrainingValidate(t *testing.T) {
	period, err := kernel.NewPeriod(kernel.NewTimestamp(time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)), kernel.Timestamp{})
	require.NoError(t, err)

	training := Training{Period: period}
	require.ErrorIs(t, training.Validate(), ErrTextRequired)

	training.Texts = kernel.NewText(kernel.LocaleText{Locale: kernel.LocaleNL, Format: kernel.FormatMarkdown, Title: "Training"})
	require.NoError(t, training.Validate())

	training.Period = kernel.Period{}
	require.ErrorIs(t, training.Validate(), kernel.ErrValidation)
}

func TestTrainingDefinitionValidate(t *testing.T) {
	start, err := kernel.ParseTimeOfDay("19:00")
	require.NoError(t, err)
	period, err := kernel.NewTimePeriod(start, kernel.TimeOfDay{}, "Europe/Brussels")
	require.NoError(t, err)

	definition := TrainingDefinition{Name: " ", Weekday: kernel.Monday, Period: period}
	require.ErrorIs(t, definition.Validate(), ErrNameRequired)

	definition.Name = "U11"
	require.NoError(t, definition.Validate())

	definition.Weekday = 9
	require.ErrorIs(t, definition.Validate(), kernel.ErrValidation)
}

func TestReplaceTrainingKeepsCoachesOfOriginal(t *testing.T) {
	definition := TrainingDefinition{Name: "Wednesday"}
	original := Training{
		Coaches:    []TrainingCoach{{Type: CoachTypeHead, Present: false}},
		Teams:      []Team{{Name: "U11"}},
		Definition: &definition,
	}

	replaced := kernel.Replace(original, func(training *Training) {
		training.Coaches[0].Present = true
		training.Teams[0].Name = "U13"
		training.Definition.Name = "Friday"
	})

	require.False(t, original.Coaches[0].Present)
	require.Equal(t, "U11", original.Teams[0].Name)
	require.Equal(t, "Wednesday", original.Definition.Name)
	require.True(t, replaced.Coaches[0].Present)
	require.Equal(t, "U13", replaced.Teams[0].Name)
	require.Equal(t, "Friday", replaced.Definition.Name)
}
