package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lalajistore/vendor-gateway/internal/catalog"
	"github.com/lalajistore/vendor-gateway/internal/middleware"
	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// CatalogHandler exposes the marketplace catalog browsing surface: the
// per-session catalog view with its filter intents, the vendor's current
// inventory listing, and the select/remove workflow. Filter intents are
// acknowledged with the new view state; the rendered page arrives over SSE.
type CatalogHandler struct {
	views      *catalog.Registry
	catalogSvc *service.CatalogService
	selection  *service.SelectionService
	errors     *ErrorMapper
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(views *catalog.Registry, catalogSvc *service.CatalogService, selection *service.SelectionService, errors *ErrorMapper) *CatalogHandler {
	return &CatalogHandler{views: views, catalogSvc: catalogSvc, selection: selection, errors: errors}
}

// view returns the session's catalog view, creating it on first use.
func (h *CatalogHandler) view(sess *session.Session) *catalog.View {
	if v, ok := h.views.Get(sess.ID); ok {
		return v
	}
	return h.views.Open(sess.ID, sess.VendorID)
}

// ackState responds with the view state after an intent is applied.
func ackState(c *gin.Context, v *catalog.View) {
	s := v.Snapshot()
	utils.Success(c, 202, "Catalog fetch scheduled", gin.H{
		"page":        s.Page,
		"pageSize":    s.PageSize,
		"search":      s.Search,
		"status":      s.Status,
		"category":    s.Category,
		"subcategory": s.Subcategory,
		"knownPages":  s.KnownPages,
		"version":     s.Version,
	})
}

// SetSearch handles POST /v1/catalog/view/search.
func (h *CatalogHandler) SetSearch(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	var req struct {
		Term string `json:"term"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	v := h.view(sess)
	// The scheduled fetch outlives this request, so it cannot run on the
	// request context.
	v.SetSearch(context.Background(), req.Term)
	ackState(c, v)
}

// SetStatus handles POST /v1/catalog/view/status.
func (h *CatalogHandler) SetStatus(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	v := h.view(sess)
	v.SetStatus(context.Background(), req.Status)
	ackState(c, v)
}

// SetCategory handles POST /v1/catalog/view/category.
func (h *CatalogHandler) SetCategory(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	var req struct {
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	v := h.view(sess)
	v.SetCategory(context.Background(), req.Category)
	ackState(c, v)
}

// SetSubcategory handles POST /v1/catalog/view/subcategory.
func (h *CatalogHandler) SetSubcategory(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	var req struct {
		Subcategory string `json:"subcategory"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	v := h.view(sess)
	if err := v.SetSubcategory(context.Background(), req.Subcategory); err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	ackState(c, v)
}

// SetPage handles POST /v1/catalog/view/page.
func (h *CatalogHandler) SetPage(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	var req struct {
		Page int `json:"page" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	v := h.view(sess)
	v.SetPage(context.Background(), req.Page)
	ackState(c, v)
}

// Refresh handles POST /v1/catalog/view/refresh.
func (h *CatalogHandler) Refresh(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	v := h.view(sess)
	v.Refresh(context.Background())
	ackState(c, v)
}

// GetState handles GET /v1/catalog/view.
func (h *CatalogHandler) GetState(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	v := h.view(sess)
	s := v.Snapshot()
	utils.Success(c, 200, "Catalog view state", gin.H{
		"page":        s.Page,
		"pageSize":    s.PageSize,
		"search":      s.Search,
		"status":      s.Status,
		"category":    s.Category,
		"subcategory": s.Subcategory,
		"knownPages":  s.KnownPages,
		"version":     s.Version,
	})
}

// GetPage handles GET /v1/catalog/products. It fetches synchronously,
// bypassing the view, for clients that do not hold an SSE stream.
func (h *CatalogHandler) GetPage(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	q := listQueryFromRequest(c)

	result, err := h.catalogSvc.ListAvailable(c.Request.Context(), sess, q)
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	if !result.Success {
		utils.Error(c, 502, "UPSTREAM_UNAVAILABLE", result.Error)
		return
	}
	utils.SuccessWithPagination(c, 200, result.Items, len(result.Items), result.Total, result.Page, result.Pages)
}

// GetMyProducts handles GET /v1/catalog/my-products.
func (h *CatalogHandler) GetMyProducts(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	q := listQueryFromRequest(c)

	list, err := h.catalogSvc.MyProducts(c.Request.Context(), sess, q)
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.SuccessWithPagination(c, 200, list.Items, len(list.Items), list.Total, list.Page, list.Pages)
}

// Select handles POST /v1/catalog/select.
func (h *CatalogHandler) Select(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	var req struct {
		ProductID   string `json:"productId" binding:"required"`
		ProductName string `json:"productName"`
		Stock       int    `json:"stock"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	vp, err := h.selection.Select(c.Request.Context(), sess, service.SelectParams{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Stock:       req.Stock,
		Notes:       req.Notes,
	})
	if err != nil {
		h.errors.Respond(c, sess, err)
		return
	}
	utils.Success(c, 201, "Product selected", vp)
}

// RemoveSelection handles DELETE /v1/catalog/selection/:vendorProductId.
func (h *CatalogHandler) RemoveSelection(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	id := c.Param("vendorProductId")

	if err := h.selection.Remove(c.Request.Context(), sess, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.Error(c, 404, "NOT_FOUND", "Selection not found")
			return
		}
		h.errors.Respond(c, sess, err)
		return
	}
	utils.Success(c, 200, "Selection removed", nil)
}

// listQueryFromRequest builds a ListQuery from standard query parameters.
func listQueryFromRequest(c *gin.Context) marketplace.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if limit < 1 || limit > 100 {
		limit = 12
	}
	return marketplace.ListQuery{
		Page:        page,
		Limit:       limit,
		Search:      c.Query("search"),
		Status:      c.Query("status"),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
	}
}
