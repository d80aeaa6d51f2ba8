package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lalajistore/vendor-gateway/internal/middleware"
	"github.com/lalajistore/vendor-gateway/internal/models"
	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/internal/utils"
)

// OwnProductHandler manages the vendor's self-authored product submissions.
type OwnProductHandler struct {
	ownCatalog *service.OwnCatalogService
	errors     *ErrorMapper
}

// NewOwnProductHandler creates a new OwnProductHandler.
func NewOwnProductHandler(ownCatalog *service.OwnCatalogService, errors *ErrorMapper) *OwnProductHandler {
	return &OwnProductHandler{ownCatalog: ownCatalog, errors: errors}
}

// Create handles POST /v1/own-products.
func (h *OwnProductHandler) Create(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	var form models.OwnProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", err.Error())
		return
	}

	product, err := h.ownCatalog.Create(c.Request.Context(), sess, &form)
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.Success(c, 201, "Product submitted", product)
}

// Update handles PUT /v1/own-products/:id.
func (h *OwnProductHandler) Update(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	id := c.Param("id")
	var form models.OwnProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", err.Error())
		return
	}

	product, err := h.ownCatalog.Update(c.Request.Context(), sess, id, &form)
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.Success(c, 200, "Product updated", product)
}

// GetEditForm handles GET /v1/own-products/:id/form. It returns the
// product flattened into the editable form shape.
func (h *OwnProductHandler) GetEditForm(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	id := c.Param("id")

	form, err := h.ownCatalog.EditForm(c.Request.Context(), sess, id)
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.Success(c, 200, "Product form", form)
}

// Delete handles DELETE /v1/own-products/:id?confirm=true. Without the
// confirm flag nothing is deleted.
func (h *OwnProductHandler) Delete(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	id := c.Param("id")
	confirmed := c.Query("confirm") == "true"

	if err := h.ownCatalog.Delete(c.Request.Context(), sess, id, confirmed); err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}

// List handles GET /v1/own-products.
func (h *OwnProductHandler) List(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	q := listQueryFromRequest(c)

	list, err := h.ownCatalog.Submissions(c.Request.Context(), sess, q)
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.SuccessWithPagination(c, 200, list.Items, len(list.Items), list.Total, list.Page, list.Pages)
}
