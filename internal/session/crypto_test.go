package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenEncryptionRoundTrip(t *testing.T) {
	key := testKey32()

	enc, err := encryptToken("marketplace-token", key)
	require.NoError(t, err)
	assert.NotContains(t, string(enc), "marketplace-token")

	dec, err := decryptToken(enc, key)
	require.NoError(t, err)
	assert.Equal(t, "marketplace-token", dec)
}

func TestTokenEncryptionUniqueNonce(t *testing.T) {
	key := testKey32()

	a, err := encryptToken("same", key)
	require.NoError(t, err)
	b, err := encryptToken("same", key)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenDecryptionRejectsTampering(t *testing.T) {
	key := testKey32()

	enc, err := encryptToken("tok", key)
	require.NoError(t, err)
	enc[len(enc)-1] ^= 0xff

	_, err = decryptToken(enc, key)
	assert.Error(t, err)
}

func TestTokenDecryptionRejectsWrongKey(t *testing.T) {
	key := testKey32()
	enc, err := encryptToken("tok", key)
	require.NoError(t, err)

	other := testKey32()
	other[0] ^= 0xff
	_, err = decryptToken(enc, other)
	assert.Error(t, err)
}

func TestInvalidKeyLength(t *testing.T) {
	_, err := encryptToken("tok", []byte("short"))
	assert.Error(t, err)

	_, err = decryptToken([]byte("whatever"), []byte("short"))
	assert.Error(t, err)
}

func testKey32() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 3)
	}
	return key
}
