package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString_Deterministic(t *testing.T) {
	a := HashString(`{"id":1}`, "secret")
	b := HashString(`{"id":1}`, "secret")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestHashString_DependsOnKey(t *testing.T) {
	assert.NotEqual(t, HashString("data", "k1"), HashString("data", "k2"))
}

func TestVerifyHash(t *testing.T) {
	sig := HashString("payload", "secret")

	assert.True(t, VerifyHash("payload", sig, "secret"))
	assert.False(t, VerifyHash("payload!", sig, "secret"))
	assert.False(t, VerifyHash("payload", sig, "other"))
	assert.False(t, VerifyHash("payload", "not-hex", "secret"))
}
