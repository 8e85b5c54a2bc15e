package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")

	k1 := DeriveKey([]byte("password"), salt)
	k2 := DeriveKey([]byte("password"), salt)

	require.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	salt := []byte("0123456789abcdef")

	k1 := DeriveKey([]byte("password"), salt)
	k2 := DeriveKey([]byte("other"), salt)
	k3 := DeriveKey([]byte("password"), []byte("fedcba9876543210"))

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestEncryptDecryptBlob_RoundTrip(t *testing.T) {
	salt, err := MakeSalt()
	require.NoError(t, err)
	key := DeriveKey([]byte("password"), salt)

	plaintext := []byte(`{"user_id":7,"email":"a@b.c"}`)
	ciphertext, nonce, err := EncryptBlob(plaintext, key)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, ciphertext)

	got, err := DecryptBlob(ciphertext, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptBlob_WrongKey(t *testing.T) {
	salt, err := MakeSalt()
	require.NoError(t, err)
	key := DeriveKey([]byte("password"), salt)

	ciphertext, nonce, err := EncryptBlob([]byte("secret"), key)
	require.NoError(t, err)

	wrong := DeriveKey([]byte("nope"), salt)
	_, err = DecryptBlob(ciphertext, nonce, wrong)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
