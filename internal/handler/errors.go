package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// ErrorMapper translates service errors into the standard response
// envelope. A marketplace 401 additionally invalidates the stored session
// so the next request fails fast at the middleware.
type ErrorMapper struct {
	auth *service.AuthService
}

// NewErrorMapper constructs an ErrorMapper.
func NewErrorMapper(auth *service.AuthService) *ErrorMapper {
	return &ErrorMapper{auth: auth}
}

// Respond writes the error response for err on behalf of sess.
func (m *ErrorMapper) Respond(c *gin.Context, sess *session.Session, err error) {
	switch {
	case errors.Is(err, marketplace.ErrUnauthorized):
		m.auth.Invalidate(sess)
		utils.Error(c, 401, "SESSION_EXPIRED", "Session expired, please log in again")
	case errors.Is(err, utils.ErrInvalidStock):
		utils.Error(c, 400, "INVALID_STOCK", "Stock must be greater than zero")
	case errors.Is(err, utils.ErrAlreadySelected):
		utils.Error(c, 409, "ALREADY_SELECTED", "Product is already in your inventory")
	case errors.Is(err, utils.ErrSelectionInFlight):
		utils.Error(c, 409, "SELECTION_IN_FLIGHT", "A selection for this product is already in progress")
	case errors.Is(err, utils.ErrNotSelected):
		utils.Error(c, 404, "NOT_SELECTED", "Product is not in your inventory")
	case errors.Is(err, utils.ErrCategoryRequired):
		utils.Error(c, 400, "CATEGORY_REQUIRED", "Select a category before filtering by subcategory")
	case errors.Is(err, utils.ErrDeleteNotConfirmed):
		utils.Error(c, 400, "DELETE_NOT_CONFIRMED", "Deletion requires confirmation")
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "NOT_FOUND", "Resource not found")
	default:
		var apiErr *marketplace.APIError
		if errors.As(err, &apiErr) {
			utils.Error(c, apiErr.Status, "MARKETPLACE_ERROR", apiErr.Message)
			return
		}
		utils.Error(c, 502, "UPSTREAM_UNAVAILABLE", "Marketplace request failed")
	}
}
