package domain

import (
	"fmt"
	"strings"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// TrainingDefinitionIdentifier identifies a training definition.
type TrainingDefinitionIdentifier = kernel.IntIdentifier

// ErrNameRequired is returned for a definition without name.
var ErrNameRequired = fmt.Errorf("%w: name is required", kernel.ErrValidation)

// TrainingDefinition describes recurring trainings: the day of the week, the time
// and optionally the team.
type TrainingDefinition struct {
	kernel.Entity[TrainingDefinitionIdentifier]
	Name          string
	Description   string
	Weekday       kernel.Weekday
	Period        kernel.TimePeriod
	Active        bool
	Location      string
	Remark        string
	Team          *Team
	Owner         kernel.Owner
	TraceableTime kernel.TraceableTime
}

// Validate checks the properties of a definition.
func (d TrainingDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if _, err := kernel.NewWeekday(int(d.Weekday)); err != nil {
		return err
	}
	if d.Period.Start().IsEmpty() {
		return fmt.Errorf("%w: start time is required", kernel.ErrValidation)
	}
	return nil
}
