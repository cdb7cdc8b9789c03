package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/identity/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
)

type UserHandler struct {
	service ports.Service
}

func (h *UserHandler) GetUserAccounts(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewUserAccountsPresenter()
	command := ports.GetUserAccountsCommand{Limit: pagination.Limit, Offset: pagination.Offset}
	if err := h.service.GetUserAccounts(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

// RevokeUser revokes the user account named by the id of the document, or enacts it
// when the revoked attribute is false.
func (h *UserHandler) RevokeUser(c *gin.Context) {
	resource, err := jsonapi.BindResource[documents.RevokedUserAttributes](c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	if resource.ID == "" {
		apierrors.DomainResponder.BadRequest(c, "the id of the user is required")
		return
	}
	presenter := documents.NewRevokedUserPresenter()
	if resource.Attributes.Revoked {
		err = h.service.RevokeUser(c.Request.Context(), ports.RevokeUserCommand{UUID: resource.ID}, presenter)
	} else {
		err = h.service.EnactUser(c.Request.Context(), ports.EnactUserCommand{UUID: resource.ID}, presenter)
	}
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

func (h *UserHandler) EnactUser(c *gin.Context) {
	presenter := documents.NewRevokedUserPresenter()
	if err := h.service.EnactUser(c.Request.Context(), ports.EnactUserCommand{UUID: c.Param("uuid")}, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}
