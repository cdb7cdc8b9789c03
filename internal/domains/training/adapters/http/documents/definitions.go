package documents

import (
	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

const TrainingDefinitionType = "training_definitions"

// TrainingDefinitionAttributes use HH:MM for the times. An endless definition has an
// empty end time.
type TrainingDefinitionAttributes struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Weekday     int    `json:"weekday"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Timezone    string `json:"timezone"`
	Active      bool   `json:"active"`
	Location    string `json:"location"`
	Remark      string `json:"remark"`
}

type TrainingDefinitionDocument = jsonapi.Document[TrainingDefinitionAttributes]

func NewTrainingDefinitionResource(definition domain.TrainingDefinition) jsonapi.Resource[TrainingDefinitionAttributes] {
	var team *jsonapi.ResourceIdentifier
	if definition.Team != nil {
		team = NewTeamResource(*definition.Team).Ref()
	}
	return jsonapi.Resource[TrainingDefinitionAttributes]{
		Type: TrainingDefinitionType,
		ID:   definition.ID().String(),
		Attributes: TrainingDefinitionAttributes{
			Name:        definition.Name,
			Description: definition.Description,
			Weekday:     int(definition.Weekday),
			StartTime:   definition.Period.Start().String(),
			EndTime:     definition.Period.End().String(),
			Timezone:    definition.Period.Timezone(),
			Active:      definition.Active,
			Location:    definition.Location,
			Remark:      definition.Remark,
		},
		Meta: jsonapi.NewResourceMeta(definition.TraceableTime),
	}.Relate("team", jsonapi.ToOne(team))
}

func NewTrainingDefinitionDocument(definition domain.TrainingDefinition) TrainingDefinitionDocument {
	document := jsonapi.NewDocument(NewTrainingDefinitionResource(definition))
	if definition.Team != nil {
		document.Include(NewTeamResource(*definition.Team))
	}
	return document
}

func NewTrainingDefinitionPresenter() *jsonapi.DocumentPresenter[domain.TrainingDefinition, TrainingDefinitionAttributes] {
	return jsonapi.NewDocumentPresenter(NewTrainingDefinitionDocument)
}

func NewTrainingDefinitionsPresenter() *jsonapi.CollectionPresenter[domain.TrainingDefinition, TrainingDefinitionAttributes] {
	return jsonapi.NewCollectionPresenter(NewTrainingDefinitionDocument)
}
