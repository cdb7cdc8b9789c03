package jsonapi

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/shared/kernel"
)

// MediaType is the JSON:API media type.
const MediaType = "application/vnd.api+json"

// Respond writes document with the JSON:API media type.
func Respond(c *gin.Context, status int, document any) {
	c.Header("Content-Type", MediaType)
	c.JSON(status, document)
}

// BindPagination reads page[offset] and page[limit] from the query string.
func BindPagination(c *gin.Context) (Pagination, error) {
	var pagination Pagination
	if err := c.ShouldBindQuery(&pagination); err != nil {
		return Pagination{}, fmt.Errorf("%w: invalid pagination: %v", kernel.ErrValidation, err)
	}
	return pagination, nil
}

// BindResource decodes a request document holding one resource.
func BindResource[A any](c *gin.Context) (Resource[A], error) {
	var document Document[A]
	if err := json.NewDecoder(c.Request.Body).Decode(&document); err != nil {
		return Resource[A]{}, fmt.Errorf("%w: invalid document: %v", kernel.ErrValidation, err)
	}
	resource, ok := document.Resource()
	if !ok {
		return Resource[A]{}, fmt.Errorf("%w: document has no data", kernel.ErrValidation)
	}
	return resource, nil
}
