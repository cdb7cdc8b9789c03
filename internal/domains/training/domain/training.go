package domain

import (
	"fmt"
	"slices"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// TrainingIdentifier identifies a training.
type TrainingIdentifier = kernel.IntIdentifier

// ErrTextRequired is returned for a training without any text.
var ErrTextRequired = fmt.Errorf("%w: a training needs at least one text", kernel.ErrValidation)

// Training is a training event. A training created from a definition refers to it.
type Training struct {
	kernel.Entity[TrainingIdentifier]
	Texts         kernel.Text
	Definition    *TrainingDefinition
	Coaches       []TrainingCoach
	Teams         []Team
	Period        kernel.Period
	Active        bool
	Cancelled     bool
	Location      string
	Remark        string
	TraceableTime kernel.TraceableTime
}

// Clone copies the training with its coaches, teams and definition.
func (t Training) Clone() Training {
	t.Coaches = slices.Clone(t.Coaches)
	t.Teams = slices.Clone(t.Teams)
	if t.Definition != nil {
		definition := *t.Definition
		t.Definition = &definition
	}
	return t
}

// Validate checks the invariants of a training.
func (t Training) Validate() error {
	if t.Texts.Len() == 0 {
		return ErrTextRequired
	}
	if t.Period.Start().IsEmpty() {
		return fmt.Errorf("%w: a training needs a start", kernel.ErrValidation)
	}
	return nil
}

// CoachIDs returns the identifiers of the assigned coaches.
func (t Training) CoachIDs() []CoachIdentifier {
	ids := make([]CoachIdentifier, 0, len(t.Coaches))
	for _, coach := range t.Coaches {
		ids = append(ids, coach.Coach.ID())
	}
	return ids
}
