package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lalajistore/vendor-gateway/internal/middleware"
	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/internal/utils"
)

// TaxonomyHandler serves the category and subcategory lists used to
// populate the catalog filter dropdowns.
type TaxonomyHandler struct {
	taxonomy *service.TaxonomyService
	errors   *ErrorMapper
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(taxonomy *service.TaxonomyService, errors *ErrorMapper) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy, errors: errors}
}

// GetCategories handles GET /v1/categories.
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)

	categories, err := h.taxonomy.Categories(c.Request.Context(), sess.Token)
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.Success(c, 200, "Categories", categories)
}

// GetSubcategories handles GET /v1/subcategories?category=<id>. An empty
// or "all" category yields an empty list without an upstream call.
func (h *TaxonomyHandler) GetSubcategories(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	category := c.Query("category")

	subcategories, err := h.taxonomy.Subcategories(c.Request.Context(), sess.Token, category)
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.Success(c, 200, "Subcategories", subcategories)
}
