package domain

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMasterKey(t *testing.T) {
	t.Run("valid 32-byte key", func(t *testing.T) {
		material := make([]byte, 32)
		_, err := rand.Read(material)
		require.NoError(t, err)

		mk, err := NewMasterKey(material)
		require.NoError(t, err)
		assert.Equal(t, material, mk.Bytes())
	})

	t.Run("copies the input material", func(t *testing.T) {
		material := make([]byte, 32)
		material[0] = 42

		mk, err := NewMasterKey(material)
		require.NoError(t, err)

		material[0] = 0
		assert.Equal(t, byte(42), mk.Bytes()[0])
	})

	t.Run("wrong sizes rejected", func(t *testing.T) {
		for _, size := range []int{0, 16, 31, 33, 64} {
			_, err := NewMasterKey(make([]byte, size))
			assert.ErrorIs(t, err, ErrInvalidKeySize, "size %d", size)
		}
	})
}

func TestLoadMasterKey(t *testing.T) {
	t.Run("valid base64 key", func(t *testing.T) {
		material := make([]byte, 32)
		_, err := rand.Read(material)
		require.NoError(t, err)

		mk, err := LoadMasterKey(base64.StdEncoding.EncodeToString(material))
		require.NoError(t, err)
		assert.Equal(t, material, mk.Bytes())
	})

	t.Run("empty value", func(t *testing.T) {
		_, err := LoadMasterKey("")
		assert.ErrorIs(t, err, ErrMasterKeyNotSet)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := LoadMasterKey("not-base64!!!")
		assert.ErrorIs(t, err, ErrInvalidMasterKeyBase64)
	})

	t.Run("wrong decoded length", func(t *testing.T) {
		_, err := LoadMasterKey(base64.StdEncoding.EncodeToString(make([]byte, 16)))
		assert.ErrorIs(t, err, ErrInvalidKeySize)
	})
}

func TestMasterKey_Close(t *testing.T) {
	material := make([]byte, 32)
	for i := range material {
		material[i] = byte(i + 1)
	}

	mk, err := NewMasterKey(material)
	require.NoError(t, err)

	mk.Close()
	assert.Nil(t, mk.Bytes())
}

func TestParseAlgorithm(t *testing.T) {
	t.Run("known algorithms", func(t *testing.T) {
		alg, err := ParseAlgorithm("aes-gcm")
		require.NoError(t, err)
		assert.Equal(t, AESGCM, alg)

		alg, err = ParseAlgorithm("chacha20-poly1305")
		require.NoError(t, err)
		assert.Equal(t, ChaCha20, alg)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := ParseAlgorithm("rot13")
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}
