package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

var Envs = struct {
	ADDR            string
	ALLOWED_ORIGINS string
	PUBLIC_URL      string
	GIN_MODE        string
}{
	ADDR:            getEnv("ADDR", ":5000"),
	ALLOWED_ORIGINS: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	PUBLIC_URL:      getEnv("PUBLIC_URL", "http://localhost:3000"),
	GIN_MODE:        os.Getenv("GIN_MODE"),
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
