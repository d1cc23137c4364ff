package app

import (
	"strings"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

// parseBaseURLOverride reads "live=https://example.com;dev=http://localhost:3000".
// Unknown environments and malformed pairs are skipped.
func parseBaseURLOverride(override string) map[domain.Environment]string {
	if override == "" {
		return nil
	}
	parsed := make(map[domain.Environment]string)
	pairs := strings.Split(override, ";")
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}

		env := domain.Environment(strings.ToLower(strings.TrimSpace(parts[0])))
		url := strings.TrimSpace(parts[1])
		if url == "" {
			continue
		}

		switch env {
		case domain.EnvironmentLive, domain.EnvironmentDev:
			parsed[env] = url
		}
	}
	if len(parsed) == 0 {
		return nil
	}
	return parsed
}
