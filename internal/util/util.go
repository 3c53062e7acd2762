package util

import (
	"os"
	"strconv"
	"strings"
)

func GetEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func GetEnvAsInt(name string, defaultVal int) int {
	valueStr := GetEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}

	return defaultVal
}

func IsBlank(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// SiteURL returns the public site address used to build poem and
// unsubscribe links in outgoing mail.
func SiteURL() string {
	return GetEnv("SITE_URL", "https://blumenous-poetry.vercel.app")
}

// AdminEmail returns the configured administrator address, empty when unset.
func AdminEmail() string {
	return GetEnv("ADMIN_EMAIL", "")
}
