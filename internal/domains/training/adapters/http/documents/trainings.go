// Package documents converts trainings, definitions and coaches to JSON:API documents.
package documents

import (
	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

const (
	TrainingType      = "trainings"
	TrainingCoachType = "training_coaches"
	CoachType         = "coaches"
	TeamType          = "teams"
)

// EventAttributes holds the moment and place of a training.
type EventAttributes struct {
	StartDate kernel.Timestamp `json:"start_date"`
	EndDate   kernel.Timestamp `json:"end_date"`
	Location  string           `json:"location"`
	Cancelled bool             `json:"cancelled"`
	Active    bool             `json:"active"`
}

type TrainingAttributes struct {
	Texts  []jsonapi.TextAttributes `json:"texts"`
	Event  EventAttributes          `json:"event"`
	Remark string                   `json:"remark"`
}

type TrainingDocument = jsonapi.Document[TrainingAttributes]

// NewTrainingResource relates the coaches, the teams and the definition of the training.
func NewTrainingResource(training domain.Training) jsonapi.Resource[TrainingAttributes] {
	coaches := make([]jsonapi.ResourceIdentifier, 0, len(training.Coaches))
	for _, coach := range training.Coaches {
		coaches = append(coaches, NewTrainingCoachResource(training.ID(), coach).Identifier())
	}
	teams := make([]jsonapi.ResourceIdentifier, 0, len(training.Teams))
	for _, team := range training.Teams {
		teams = append(teams, NewTeamResource(team).Identifier())
	}
	var definition *jsonapi.ResourceIdentifier
	if training.Definition != nil {
		definition = &jsonapi.ResourceIdentifier{Type: TrainingDefinitionType, ID: training.Definition.ID().String()}
	}
	return jsonapi.Resource[TrainingAttributes]{
		Type: TrainingType,
		ID:   training.ID().String(),
		Attributes: TrainingAttributes{
			Texts: jsonapi.NewTextAttributes(training.Texts),
			Event: EventAttributes{
				StartDate: training.Period.Start(),
				EndDate:   training.Period.End(),
				Location:  training.Location,
				Cancelled: training.Cancelled,
				Active:    training.Active,
			},
			Remark: training.Remark,
		},
		Meta: jsonapi.NewResourceMeta(training.TraceableTime),
	}.
		Relate("coaches", jsonapi.ToMany(coaches...)).
		Relate("teams", jsonapi.ToMany(teams...)).
		Relate("definition", jsonapi.ToOne(definition))
}

// NewTrainingDocument includes the training coaches, the teams and the definition.
func NewTrainingDocument(training domain.Training) TrainingDocument {
	document := jsonapi.NewDocument(NewTrainingResource(training))
	for _, coach := range training.Coaches {
		document.Include(NewTrainingCoachResource(training.ID(), coach))
	}
	for _, team := range training.Teams {
		document.Include(NewTeamResource(team))
	}
	if training.Definition != nil {
		definitionDocument := NewTrainingDefinitionDocument(*training.Definition)
		resource, _ := definitionDocument.Resource()
		document.Include(resource)
		document.Include(definitionDocument.Included()...)
	}
	return document
}

func NewTrainingPresenter() *jsonapi.DocumentPresenter[domain.Training, TrainingAttributes] {
	return jsonapi.NewDocumentPresenter(NewTrainingDocument)
}

func NewTrainingsPresenter() *jsonapi.CollectionPresenter[domain.Training, TrainingAttributes] {
	return jsonapi.NewCollectionPresenter(NewTrainingDocument)
}

// TrainingCoachAttributes describe the role of a coach in one training. The id of the
// resource combines the ids of the training and the coach.
type TrainingCoachAttributes struct {
	Name    string `json:"name"`
	Head    bool   `json:"head"`
	Present bool   `json:"present"`
	Payed   bool   `json:"payed"`
	Remark  string `json:"remark"`
}

func NewTrainingCoachResource(training domain.TrainingIdentifier, coach domain.TrainingCoach) jsonapi.Resource[TrainingCoachAttributes] {
	return jsonapi.Resource[TrainingCoachAttributes]{
		Type: TrainingCoachType,
		ID:   training.String() + "-" + coach.Coach.ID().String(),
		Attributes: TrainingCoachAttributes{
			Name:    coach.Coach.Name.String(),
			Head:    coach.Type == domain.CoachTypeHead,
			Present: coach.Present,
			Payed:   coach.Payed,
			Remark:  coach.Remark,
		},
	}.Relate("coach", jsonapi.ToOne(NewCoachResource(coach.Coach).Ref()))
}

type CoachAttributes struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type CoachDocument = jsonapi.Document[CoachAttributes]

func NewCoachResource(coach domain.Coach) jsonapi.Resource[CoachAttributes] {
	return jsonapi.Resource[CoachAttributes]{
		Type:       CoachType,
		ID:         coach.ID().String(),
		Attributes: CoachAttributes{Name: coach.Name.String(), Active: coach.Active},
	}
}

func NewCoachDocument(coach domain.Coach) CoachDocument {
	return jsonapi.NewDocument(NewCoachResource(coach))
}

func NewCoachesPresenter() *jsonapi.CollectionPresenter[domain.Coach, CoachAttributes] {
	return jsonapi.NewCollectionPresenter(NewCoachDocument)
}

type TeamAttributes struct {
	Name string `json:"name"`
}

func NewTeamResource(team domain.Team) jsonapi.Resource[TeamAttributes] {
	return jsonapi.Resource[TeamAttributes]{
		Type:       TeamType,
		ID:         team.ID().String(),
		Attributes: TeamAttributes{Name: team.Name},
	}
}

// TrainingRequestAttributes is the payload to create or update a training. The coaches
// are assigned with their role, the teams and the definition are relationships.
type TrainingRequestAttributes struct {
	TrainingAttributes
	Coaches []TrainingCoachRequest `json:"coaches"`
}

type TrainingCoachRequest struct {
	ID      int64  `json:"id"`
	Head    bool   `json:"head"`
	Present bool   `json:"present"`
	Payed   bool   `json:"payed"`
	Remark  string `json:"remark"`
}
