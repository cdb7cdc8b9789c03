package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/fbraem/kwai/internal/domains/identity/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/shared/authn"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type InvitationHandler struct {
	service ports.Service
}

func (h *InvitationHandler) GetUserInvitations(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewUserInvitationsPresenter()
	command := ports.GetUserInvitationsCommand{Limit: pagination.Limit, Offset: pagination.Offset}
	if err := h.service.GetUserInvitations(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *InvitationHandler) GetUserInvitation(c *gin.Context) {
	presenter := documents.NewUserInvitationPresenter()
	command := ports.GetUserInvitationCommand{UUID: c.Param("uuid")}
	if err := h.service.GetUserInvitation(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *InvitationHandler) CreateUserInvitation(c *gin.Context) {
	principal, _ := authn.Get(c)
	resource, err := jsonapi.BindResource[documents.UserInvitationAttributes](c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	attributes := resource.Attributes
	if err := binding.Validator.ValidateStruct(attributes); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	presenter := documents.NewUserInvitationPresenter()
	command := ports.InviteUserCommand{
		Email:     attributes.Email,
		FirstName: attributes.FirstName,
		LastName:  attributes.LastName,
		Remark:    attributes.Remark,
		Owner:     principal.Owner,
	}
	if err := h.service.InviteUser(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

func (h *InvitationHandler) DeleteUserInvitation(c *gin.Context) {
	if err := h.service.DeleteUserInvitation(c.Request.Context(), ports.DeleteUserInvitationCommand{UUID: c.Param("uuid")}); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

type recreateAttributes struct {
	Remark         string `json:"remark"`
	ExpirationDays int    `json:"expiration_days" binding:"gte=0"`
}

// RecreateUserInvitation revokes the invitation and returns the new one. The body is
// optional.
func (h *InvitationHandler) RecreateUserInvitation(c *gin.Context) {
	principal, _ := authn.Get(c)
	var attributes recreateAttributes
	if c.Request.ContentLength != 0 {
		resource, err := jsonapi.BindResource[recreateAttributes](c)
		if err != nil {
			apierrors.DomainResponder.RespondError(c, err)
			return
		}
		attributes = resource.Attributes
		if err := binding.Validator.ValidateStruct(attributes); err != nil {
			apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
			return
		}
	}
	presenter := documents.NewUserInvitationPresenter()
	command := ports.RecreateUserInvitationCommand{
		UUID:           c.Param("uuid"),
		Remark:         attributes.Remark,
		ExpirationDays: attributes.ExpirationDays,
		Owner:          principal.Owner,
	}
	if err := h.service.RecreateUserInvitation(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

type acceptAttributes struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Remark    string `json:"remark"`
}

// AcceptUserInvitation creates the user account and returns it.
func (h *InvitationHandler) AcceptUserInvitation(c *gin.Context) {
	resource, err := jsonapi.BindResource[acceptAttributes](c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	attributes := resource.Attributes
	if err := binding.Validator.ValidateStruct(attributes); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	presenter := documents.NewUserAccountPresenter()
	command := ports.AcceptUserInvitationCommand{
		UUID:      c.Param("uuid"),
		Email:     attributes.Email,
		FirstName: attributes.FirstName,
		LastName:  attributes.LastName,
		Password:  attributes.Password,
		Remark:    attributes.Remark,
	}
	if err := h.service.AcceptUserInvitation(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}
