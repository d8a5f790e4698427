package config

import (
	"os"
	"strings"
)

type Config struct {
	Port           string
	Environment    string   // ENV: production, development, etc.
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)

	StorageBackend string // STORAGE_BACKEND: memory, file, redis or mongo
	DataFile       string // path for the file backend
	RedisURI       string
	MongoURI       string

	// DevVerificationCode, when set, is used for every verification code
	// instead of a random one. Only honored outside production.
	DevVerificationCode string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         env,
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins:      allowedOrigins,
		StorageBackend:      strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", "file"))),
		DataFile:            getEnv("DATA_FILE", "peerlearn-data.json"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/peerlearn")),
		DevVerificationCode: getEnv("DEV_VERIFICATION_CODE", "000000"),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
