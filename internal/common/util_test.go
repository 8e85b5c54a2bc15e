package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	for _, v := range b {
		assert.Zero(t, v)
	}

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
