package domain

// Names of the events published by the identity context.
const (
	UserInvitationCreatedEvent = "kwai/v1/identity/user_invitation_created"
	UserRecoveryCreatedEvent   = "kwai/v1/identity/user_recovery_created"
)

// Event is a domain event. The payload only carries the unique id of the entity;
// consumers reload it.
type Event struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

func UserInvitationCreated(invitation UserInvitation) Event {
	return Event{Name: UserInvitationCreatedEvent, UUID: invitation.UUID.String()}
}

func UserRecoveryCreated(recovery UserRecovery) Event {
	return Event{Name: UserRecoveryCreatedEvent, UUID: recovery.UUID.String()}
}
