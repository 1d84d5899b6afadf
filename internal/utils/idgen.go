package utils

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// idAlphabet is URL and S3-key safe.
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const idLength = 16

// GenerateID returns a random identifier of idLength characters prefixed
// with prefix.
func GenerateID(prefix string) (string, error) {
	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + id, nil
}
