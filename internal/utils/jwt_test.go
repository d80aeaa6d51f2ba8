package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalajistore/vendor-gateway/internal/utils"
)

func TestJWT_RoundTrip(t *testing.T) {
	utils.InitJWT("test-secret")

	token, err := utils.GenerateJWT("v1", "sess1", "a@b.c", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "v1", claims.VendorID)
	assert.Equal(t, "sess1", claims.SessionID)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestJWT_Expired(t *testing.T) {
	utils.InitJWT("test-secret")

	token, err := utils.GenerateJWT("v1", "sess1", "", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	utils.InitJWT("secret-one")
	token, err := utils.GenerateJWT("v1", "sess1", "", time.Hour)
	require.NoError(t, err)

	utils.InitJWT("secret-two")
	_, err = utils.ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	utils.InitJWT("test-secret")

	_, err := utils.ValidateJWT("not-a-token")
	assert.Error(t, err)
}
