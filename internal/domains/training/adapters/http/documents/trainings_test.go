package documents_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/training/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

func TestTrainingDocumentIncludesRelations(t *testing.T) {
	period, err := kernel.NewPeriod(
		kernel.NewTimestamp(time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)),
		kernel.NewTimestamp(time.Date(2024, 3, 6, 19, 30, 0, 0, time.UTC)),
	)
	require.NoError(t, err)
	team := domain.Team{Entity: kernel.NewEntity(kernel.NewIntIdentifier(4)), Name: "U11"}
	start, err := kernel.ParseTimeOfDay("18:00")
	require.NoError(t, err)
	timePeriod, err := kernel.NewTimePeriod(start, kernel.TimeOfDay{}, "Europe/Brussels")
	require.NoError(t, err)
	definition := domain.TrainingDefinition{
		Entity: kernel.NewEntity(kernel.NewIntIdentifier(2)), Name: "Wednesday", Weekday: kernel.Wednesday,
		Period: timePeriod, Team: &team,
	}
	coach := domain.Coach{Entity: kernel.NewEntity(kernel.NewIntIdentifier(9)), Name: kernel.Name{FirstName: "Kyuzo", LastName: "Mifune"}}
	training := domain.Training{
		Entity:     kernel.NewEntity(kernel.NewIntIdentifier(7)),
		Texts:      kernel.NewText(kernel.LocaleText{Locale: kernel.LocaleNL, Format: kernel.FormatMarkdown, Title: "Randori"}),
		Definition: &definition,
		Coaches:    []domain.TrainingCoach{{Coach: coach, Type: domain.CoachTypeHead, Present: true}},
		Teams:      []domain.Team{team},
		Period:     period,
		Active:     true,
	}

	raw, err := json.Marshal(documents.NewTrainingDocument(training))
	require.NoError(t, err)

	var payload struct {
		Data struct {
			Attributes struct {
				Texts []map[string]string `json:"texts"`
				Event map[string]any      `json:"event"`
			} `json:"attributes"`
			Relationships map[string]struct {
				Data json.RawMessage `json:"data"`
			} `json:"relationships"`
		} `json:"data"`
		Included []struct {
			Type       string         `json:"type"`
			ID         string         `json:"id"`
			Attributes map[string]any `json:"attributes"`
		} `json:"included"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "Randori", payload.Data.Attributes.Texts[0]["title"])
	require.Equal(t, "2024-03-06 18:00:00", payload.Data.Attributes.Event["start_date"])
	require.JSONEq(t, `{"type":"training_definitions","id":"2"}`, string(payload.Data.Relationships["definition"].Data))
	require.JSONEq(t, `[{"type":"training_coaches","id":"7-9"}]`, string(payload.Data.Relationships["coaches"].Data))

	// The team of the training and of the definition is included once.
	require.Len(t, payload.Included, 3)
	require.Equal(t, documents.TrainingCoachType, payload.Included[0].Type)
	require.Equal(t, true, payload.Included[0].Attributes["head"])
	require.Equal(t, documents.TeamType, payload.Included[1].Type)
	require.Equal(t, documents.TrainingDefinitionType, payload.Included[2].Type)
	require.Equal(t, "", payload.Included[2].Attributes["end_time"])
}
