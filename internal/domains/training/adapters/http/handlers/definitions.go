package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/training/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/shared/authn"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

func (h *TrainingsHandler) GetDefinitions(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewTrainingDefinitionsPresenter()
	command := ports.GetTrainingDefinitionsCommand{Limit: pagination.Limit, Offset: pagination.Offset}
	if err := h.service.GetTrainingDefinitions(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *TrainingsHandler) GetDefinition(c *gin.Context) {
	id, ok := pathID(c, "training definition")
	if !ok {
		return
	}
	presenter := documents.NewTrainingDefinitionPresenter()
	if err := h.service.GetTrainingDefinition(c.Request.Context(), ports.GetTrainingDefinitionCommand{ID: id}, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *TrainingsHandler) CreateDefinition(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	command, err := bindDefinition(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewTrainingDefinitionPresenter()
	err = h.service.CreateTrainingDefinition(c.Request.Context(),
		ports.CreateTrainingDefinitionCommand{TrainingDefinitionCommand: command, Owner: principal.Owner}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

func (h *TrainingsHandler) UpdateDefinition(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "training definition")
	if !ok {
		return
	}
	command, err := bindDefinition(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewTrainingDefinitionPresenter()
	err = h.service.UpdateTrainingDefinition(c.Request.Context(),
		ports.UpdateTrainingDefinitionCommand{ID: id, TrainingDefinitionCommand: command, Owner: principal.Owner}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

// DeleteDefinition handles DELETE /trainings/definitions/:id. With
// delete_trainings=true the trainings of the definition are removed as well.
func (h *TrainingsHandler) DeleteDefinition(c *gin.Context) {
	id, ok := pathID(c, "training definition")
	if !ok {
		return
	}
	command := ports.DeleteTrainingDefinitionCommand{ID: id, DeleteTrainings: c.Query("delete_trainings") == "true"}
	if err := h.service.DeleteTrainingDefinition(c.Request.Context(), command); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindDefinition(c *gin.Context) (ports.TrainingDefinitionCommand, error) {
	resource, err := jsonapi.BindResource[documents.TrainingDefinitionAttributes](c)
	if err != nil {
		return ports.TrainingDefinitionCommand{}, err
	}
	attributes := resource.Attributes
	command := ports.TrainingDefinitionCommand{
		Name:        attributes.Name,
		Description: attributes.Description,
		Weekday:     attributes.Weekday,
		StartTime:   attributes.StartTime,
		EndTime:     attributes.EndTime,
		Timezone:    attributes.Timezone,
		Active:      attributes.Active,
		Location:    attributes.Location,
		Remark:      attributes.Remark,
	}
	if relationship, ok := resource.Relationship("team"); ok {
		if identifier, ok := relationship.One(); ok {
			id, err := kernel.ParseIntIdentifier(identifier.ID)
			if err != nil {
				return ports.TrainingDefinitionCommand{}, err
			}
			command.TeamID = id.Value()
		}
	}
	return command, nil
}
