package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalajistore/vendor-gateway/internal/middleware"
	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/utils"
)

func setupRouter(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitJWT("test-secret")

	db, err := session.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	key := make([]byte, 32)
	store := session.NewStore(db, key, time.Hour)

	router := gin.New()
	router.GET("/protected", middleware.NewSessionMiddleware(store).Handle(), func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c)
		require.True(t, ok)
		c.JSON(200, gin.H{"vendorId": sess.VendorID, "hasToken": sess.Token != ""})
	})
	return router, store
}

func get(router *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware_MissingHeader(t *testing.T) {
	router, _ := setupRouter(t)
	w := get(router, "")
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestSessionMiddleware_MalformedHeader(t *testing.T) {
	router, _ := setupRouter(t)
	w := get(router, "Basic abc123")
	assert.Equal(t, 401, w.Code)
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	router, _ := setupRouter(t)
	w := get(router, "Bearer garbage")
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestSessionMiddleware_SessionGone(t *testing.T) {
	router, _ := setupRouter(t)

	// Valid JWT referencing a session that no longer exists.
	token, err := utils.GenerateJWT("v1", "deleted-session", "a@b.c", time.Hour)
	require.NoError(t, err)

	w := get(router, "Bearer "+token)
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}

func TestSessionMiddleware_ValidSession(t *testing.T) {
	router, store := setupRouter(t)

	sess, err := store.Create("v1", "a@b.c", "mp-token")
	require.NoError(t, err)
	token, err := utils.GenerateJWT("v1", sess.ID, "a@b.c", time.Hour)
	require.NoError(t, err)

	w := get(router, "Bearer "+token)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"vendorId":"v1"`)
	assert.Contains(t, w.Body.String(), `"hasToken":true`)
}
