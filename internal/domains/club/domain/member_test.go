package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

func TestMergeImportedDoesNotShareEmails(t *testing.T) {
	email, err := kernel.NewEmailAddress("jigoro@kwai.test")
	require.NoError(t, err)
	other, err := kernel.NewEmailAddress("kano@kwai.test")
	require.NoError(t, err)
	imported := Member{
		License: License{Number: "12345678"},
		Person:  Person{Contact: Contact{Emails: []kernel.EmailAddress{email}}},
	}
	existing := Member{
		Entity:  kernel.NewEntity(kernel.NewIntIdentifier(3)),
		UUID:    kernel.NewUniqueID(),
		Remark:  "kept",
		License: License{Number: "12345678"},
	}

	merged := existing.MergeImported(imported)
	merged.Person.Contact.Emails[0] = other

	require.Equal(t, email, imported.Person.Contact.Emails[0])
	require.Equal(t, int64(3), merged.ID().Value())
	require.Equal(t, "kept", merged.Remark)
}
