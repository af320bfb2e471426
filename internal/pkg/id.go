package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const idBytes = 8

// GenerateReportID returns a random 16 character hex id.
func GenerateReportID() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
