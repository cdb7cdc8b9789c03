package documents_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/identity/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

func TestUserAccountDocumentHidesPassword(t *testing.T) {
	email, err := kernel.NewEmailAddress("jigoro@kwai.test")
	require.NoError(t, err)
	password, err := kernel.HashPassword("Hajime!")
	require.NoError(t, err)
	account := domain.UserAccount{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(12)),
		UUID:          kernel.NewUniqueID(),
		Email:         email,
		Name:          kernel.Name{FirstName: "Jigoro", LastName: "Kano"},
		Password:      password,
		Admin:         true,
		TraceableTime: kernel.NewTraceableTime(),
	}

	raw, err := json.Marshal(documents.NewUserAccountDocument(account))
	require.NoError(t, err)

	var document struct {
		Data struct {
			Type       string         `json:"type"`
			ID         string         `json:"id"`
			Attributes map[string]any `json:"attributes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &document))
	require.Equal(t, documents.UserAccountType, document.Data.Type)
	require.Equal(t, account.UUID.String(), document.Data.ID)
	require.Equal(t, true, document.Data.Attributes["admin"])
	require.Nil(t, document.Data.Attributes["last_login"])
	require.NotContains(t, document.Data.Attributes, "password")
	require.NotContains(t, string(raw), password.Hash())
}
