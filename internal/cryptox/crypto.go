// Package cryptox holds the crypto primitives used by the local credential
// store: argon2id key derivation and AES-GCM blob encryption.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

const (
	keyLen   = 32
	nonceLen = 12
	// SaltLen is the size of the random salt stored next to the encrypted blob.
	SaltLen = 16
)

var ErrDecryptionFailed = errors.New("decryption failed")

// DeriveKey derives a 256-bit AES key from a passphrase and salt using
// argon2id. The same parameters must be used for encryption and decryption.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keyLen)
}

// MakeSalt generates a random salt of SaltLen bytes.
func MakeSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// EncryptBlob encrypts plaintext with AES-GCM under the given key.
// A fresh random 12-byte nonce is generated per call and returned
// separately from the ciphertext.
func EncryptBlob(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = gcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// DecryptBlob reverses EncryptBlob. A wrong key or tampered ciphertext
// yields ErrDecryptionFailed.
func DecryptBlob(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
