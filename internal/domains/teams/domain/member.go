package domain

import (
	club "github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// MemberIdentifier identifies a club member.
type MemberIdentifier = kernel.IntIdentifier

// Member is the part of a club member that matters for a team.
type Member struct {
	kernel.Entity[MemberIdentifier]
	UUID         kernel.UniqueID
	Name         kernel.Name
	License      club.License
	Birthdate    club.Birthdate
	Gender       club.Gender
	Nationality  club.Country
	ActiveInClub bool
}

// TeamMember is a member of a team. An inactive team member still belongs to the
// team but does not take part in its activities.
type TeamMember struct {
	Active        bool
	Member        Member
	TraceableTime kernel.TraceableTime
}

// NewTeamMember creates the membership of member.
func NewTeamMember(member Member, active bool) TeamMember {
	return TeamMember{Active: active, Member: member, TraceableTime: kernel.NewTraceableTime()}
}
