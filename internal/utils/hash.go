package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded. Used to sign outgoing webhook payloads.
//
// Example usage:
//
//	signature := utils.HashString(string(body), "webhook-secret")
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// VerifyHash reports whether signature is the HMAC-SHA256 of data under
// hashKey, comparing in constant time.
func VerifyHash(data, signature, hashKey string) bool {
	expected, err := hex.DecodeString(HashString(data, hashKey))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}
