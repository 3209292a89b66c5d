package config

import (
	"os"
	"strings"
)

// GetSecret retrieves a secret with multiple fallback sources.
// Priority:
//  1. Direct environment variable (e.g., OPENAI_API_KEY)
//  2. File path from _FILE environment variable (e.g., OPENAI_API_KEY_FILE)
//  3. Default value
func GetSecret(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}

	// Docker secrets mount files under /run/secrets.
	if filePath := os.Getenv(envVar + "_FILE"); filePath != "" {
		if data, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	return defaultValue
}
