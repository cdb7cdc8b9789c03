// Package handlers exposes the portal use cases over HTTP.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/portal/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/shared/authn"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// PortalHandler serves /news, /pages, /portal/applications and /authors.
type PortalHandler struct {
	service ports.Service
}

func NewPortalHandler(service ports.Service) *PortalHandler {
	return &PortalHandler{service: service}
}

// Register adds the routes to group. News, pages and applications can be read by
// everyone; anonymous readers only see enabled news and pages. identify sets the
// principal when the request carries credentials, requireLogin refuses requests
// without them.
func (h *PortalHandler) Register(group *gin.RouterGroup, requireLogin, identify gin.HandlerFunc) {
	news := group.Group("/news")
	news.GET("", identify, h.GetNewsItems)
	news.GET("/:id", identify, h.GetNewsItem)
	news.POST("", requireLogin, h.CreateNewsItem)
	news.PATCH("/:id", requireLogin, h.UpdateNewsItem)
	news.DELETE("/:id", requireLogin, h.DeleteNewsItem)

	pages := group.Group("/pages")
	pages.GET("", identify, h.GetPages)
	pages.GET("/:id", identify, h.GetPage)
	pages.POST("", requireLogin, h.CreatePage)
	pages.PATCH("/:id", requireLogin, h.UpdatePage)
	pages.DELETE("/:id", requireLogin, h.DeletePage)

	applications := group.Group("/portal/applications")
	applications.GET("", h.GetApplications)
	applications.GET("/:id", h.GetApplication)
	applications.PATCH("/:id", requireLogin, h.UpdateApplication)

	group.GET("/authors", requireLogin, h.GetAuthors)
}

type applicationsFilter struct {
	Name   string `form:"filter[name]"`
	News   bool   `form:"filter[news]"`
	Pages  bool   `form:"filter[pages]"`
	Events bool   `form:"filter[events]"`
}

func (h *PortalHandler) GetApplications(c *gin.Context) {
	var filter applicationsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	presenter := documents.NewApplicationsPresenter()
	command := ports.GetApplicationsCommand{Name: filter.Name, News: filter.News, Pages: filter.Pages, Events: filter.Events}
	if err := h.service.GetApplications(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *PortalHandler) GetApplication(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	presenter := documents.NewApplicationPresenter()
	if err := h.service.GetApplication(c.Request.Context(), ports.GetApplicationCommand{ID: id}, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

// UpdateApplication ignores a changed name: the name of an application is fixed.
func (h *PortalHandler) UpdateApplication(c *gin.Context) {
	id, ok := pathID(c, "application")
	if !ok {
		return
	}
	resource, err := jsonapi.BindResource[documents.ApplicationAttributes](c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	attributes := resource.Attributes
	presenter := documents.NewApplicationPresenter()
	command := ports.UpdateApplicationCommand{
		ID:               id,
		Title:            attributes.Title,
		ShortDescription: attributes.ShortDescription,
		Description:      attributes.Description,
		Remark:           attributes.Remark,
		Weight:           attributes.Weight,
		News:             attributes.News,
		Pages:            attributes.Pages,
		Events:           attributes.Events,
	}
	if err := h.service.UpdateApplication(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *PortalHandler) GetAuthors(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewAuthorsPresenter()
	command := ports.GetAuthorsCommand{Limit: pagination.Limit, Offset: pagination.Offset}
	if err := h.service.GetAuthors(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

// onlyEnabled reports whether the request may only see enabled content.
func onlyEnabled(c *gin.Context, requested bool) bool {
	if _, ok := authn.Get(c); !ok {
		return true
	}
	return requested
}

func textCommands(texts []jsonapi.TextAttributes) []ports.TextCommand {
	commands := make([]ports.TextCommand, 0, len(texts))
	for _, text := range texts {
		commands = append(commands, ports.TextCommand{
			Locale:  text.Locale,
			Format:  text.Format,
			Title:   text.Title,
			Summary: text.Summary,
			Content: text.Content,
		})
	}
	return commands
}

// applicationID reads the required application relationship.
func applicationID(relationship jsonapi.Relationship, ok bool) (int64, error) {
	if !ok {
		return 0, fmt.Errorf("%w: application relationship is required", kernel.ErrValidation)
	}
	identifier, ok := relationship.One()
	if !ok {
		return 0, fmt.Errorf("%w: application relationship is required", kernel.ErrValidation)
	}
	id, err := kernel.ParseIntIdentifier(identifier.ID)
	if err != nil {
		return 0, err
	}
	return id.Value(), nil
}

func pathID(c *gin.Context, kind string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: invalid %s id %q", kernel.ErrValidation, kind, c.Param("id")))
		return 0, false
	}
	return id, true
}
