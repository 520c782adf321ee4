package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Agent   AgentConfig
	Keys    APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type StorageConfig struct {
	// EntriesFilePath is the single slot holding the serialized entry
	// catalog. A missing or unreadable file means an empty catalog.
	EntriesFilePath string
}

type AgentConfig struct {
	BaseURL        string
	AgentId        string
	TimeoutSeconds int
}

type APIKeys struct {
	OpenAI string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Storage: StorageConfig{
			EntriesFilePath: getEnv("DIARY_ENTRIES_FILE_PATH", "diary_entries.json"),
		},
		Agent: AgentConfig{
			BaseURL:        getEnv("AGENT_BASE_URL", "http://localhost:8080"),
			AgentId:        getEnv("AGENT_ID", "6988355929694629a3a35973"),
			TimeoutSeconds: getEnvAsInt("AGENT_TIMEOUT_SECONDS", 60),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
