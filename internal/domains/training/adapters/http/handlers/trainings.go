// Package handlers exposes the training use cases over HTTP.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/training/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/shared/authn"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// TrainingsHandler serves /trainings, /trainings/definitions and /trainings/coaches.
type TrainingsHandler struct {
	service ports.Service
}

func NewTrainingsHandler(service ports.Service) *TrainingsHandler {
	return &TrainingsHandler{service: service}
}

// Register adds the routes to group. Trainings, definitions and coaches can be read by
// everyone; changes need a logged in user.
func (h *TrainingsHandler) Register(group *gin.RouterGroup, requireLogin gin.HandlerFunc) {
	trainings := group.Group("/trainings")
	trainings.GET("", h.GetTrainings)
	trainings.GET("/coaches", h.GetCoaches)
	trainings.GET("/definitions", h.GetDefinitions)
	trainings.GET("/definitions/:id", h.GetDefinition)
	trainings.POST("/definitions", requireLogin, h.CreateDefinition)
	trainings.PATCH("/definitions/:id", requireLogin, h.UpdateDefinition)
	trainings.DELETE("/definitions/:id", requireLogin, h.DeleteDefinition)
	trainings.GET("/:id", h.GetTraining)
	trainings.POST("", requireLogin, h.CreateTraining)
	trainings.PATCH("/:id", requireLogin, h.UpdateTraining)
	trainings.DELETE("/:id", requireLogin, h.DeleteTraining)
}

type trainingsFilter struct {
	Year       int    `form:"filter[year]" binding:"min=0"`
	Month      int    `form:"filter[month]" binding:"min=0,max=12"`
	Start      string `form:"filter[start]"`
	End        string `form:"filter[end]"`
	Coach      int64  `form:"filter[coach]" binding:"min=0"`
	Team       int64  `form:"filter[team]" binding:"min=0"`
	Definition int64  `form:"filter[definition]" binding:"min=0"`
	Active     bool   `form:"filter[active]"`
}

func (h *TrainingsHandler) GetTrainings(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	var filter trainingsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	presenter := documents.NewTrainingsPresenter()
	command := ports.GetTrainingsCommand{
		Limit:        pagination.Limit,
		Offset:       pagination.Offset,
		Year:         filter.Year,
		Month:        filter.Month,
		Start:        filter.Start,
		End:          filter.End,
		CoachID:      filter.Coach,
		TeamID:       filter.Team,
		DefinitionID: filter.Definition,
		Active:       filter.Active,
	}
	if err := h.service.GetTrainings(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *TrainingsHandler) GetTraining(c *gin.Context) {
	id, ok := pathID(c, "training")
	if !ok {
		return
	}
	presenter := documents.NewTrainingPresenter()
	if err := h.service.GetTraining(c.Request.Context(), ports.GetTrainingCommand{ID: id}, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *TrainingsHandler) CreateTraining(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	command, err := bindTraining(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewTrainingPresenter()
	err = h.service.CreateTraining(c.Request.Context(), ports.CreateTrainingCommand{TrainingCommand: command, Owner: principal.Owner}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

func (h *TrainingsHandler) UpdateTraining(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "training")
	if !ok {
		return
	}
	command, err := bindTraining(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewTrainingPresenter()
	err = h.service.UpdateTraining(c.Request.Context(), ports.UpdateTrainingCommand{ID: id, TrainingCommand: command, Owner: principal.Owner}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *TrainingsHandler) DeleteTraining(c *gin.Context) {
	id, ok := pathID(c, "training")
	if !ok {
		return
	}
	if err := h.service.DeleteTraining(c.Request.Context(), ports.DeleteTrainingCommand{ID: id}); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type coachesFilter struct {
	Active bool `form:"filter[active]"`
}

func (h *TrainingsHandler) GetCoaches(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	var filter coachesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	presenter := documents.NewCoachesPresenter()
	command := ports.GetCoachesCommand{Active: filter.Active, Limit: pagination.Limit, Offset: pagination.Offset}
	if err := h.service.GetCoaches(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

// bindTraining reads the training document of a create or update request.
func bindTraining(c *gin.Context) (ports.TrainingCommand, error) {
	resource, err := jsonapi.BindResource[documents.TrainingRequestAttributes](c)
	if err != nil {
		return ports.TrainingCommand{}, err
	}
	attributes := resource.Attributes
	command := ports.TrainingCommand{
		Start:     attributes.Event.StartDate.String(),
		End:       attributes.Event.EndDate.String(),
		Active:    attributes.Event.Active,
		Cancelled: attributes.Event.Cancelled,
		Location:  attributes.Event.Location,
		Remark:    attributes.Remark,
	}
	for _, text := range attributes.Texts {
		command.Texts = append(command.Texts, ports.TextCommand{
			Locale: text.Locale, Format: text.Format, Title: text.Title, Summary: text.Summary, Content: text.Content,
		})
	}
	for _, coach := range attributes.Coaches {
		command.Coaches = append(command.Coaches, ports.TrainingCoachCommand{
			ID: coach.ID, Head: coach.Head, Present: coach.Present, Payed: coach.Payed, Remark: coach.Remark,
		})
	}
	if relationship, ok := resource.Relationship("teams"); ok {
		for _, identifier := range relationship.Many() {
			id, err := kernel.ParseIntIdentifier(identifier.ID)
			if err != nil {
				return ports.TrainingCommand{}, err
			}
			command.TeamIDs = append(command.TeamIDs, id.Value())
		}
	}
	if relationship, ok := resource.Relationship("definition"); ok {
		if identifier, ok := relationship.One(); ok {
			id, err := kernel.ParseIntIdentifier(identifier.ID)
			if err != nil {
				return ports.TrainingCommand{}, err
			}
			command.DefinitionID = id.Value()
		}
	}
	return command, nil
}

func pathID(c *gin.Context, kind string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: invalid %s id %q", kernel.ErrValidation, kind, c.Param("id")))
		return 0, false
	}
	return id, true
}
