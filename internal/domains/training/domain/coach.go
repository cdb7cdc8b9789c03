package domain

import "github.com/fbraem/kwai/internal/shared/kernel"

// CoachIdentifier identifies a coach.
type CoachIdentifier = kernel.IntIdentifier

// Coach is a member of the club giving trainings.
type Coach struct {
	kernel.Entity[CoachIdentifier]
	Name   kernel.Name
	Active bool
}

// TeamIdentifier identifies a team.
type TeamIdentifier = kernel.IntIdentifier

// Team is a team attending trainings.
type Team struct {
	kernel.Entity[TeamIdentifier]
	Name string
}

// CoachType tells the role of a coach during a training.
type CoachType int

const (
	CoachTypeHead CoachType = iota
	CoachTypeAssistant
)

// TrainingCoach is a coach assigned to a training.
type TrainingCoach struct {
	Coach   Coach
	Type    CoachType
	Present bool
	Payed   bool
	Remark  string
	Owner   kernel.Owner
}
