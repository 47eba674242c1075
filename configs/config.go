package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	MongoURI         string
	MongoDatabase    string
	RabbitMQURI      string
	RabbitMQExchange string
	FrontendURL      string
	LLMAPIKey        string
	LLMBaseURL       string
	LLMModel         string
	YouTubeAPIKey    string
	ArticleSearchURL string
	JWTSecret        string
	AllowOrigins     []string
	ServiceName      string
	ServiceVersion   string
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		GinMode:          getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:         getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnvOrDefault("MONGO_DATABASE", "quiz_hub"),
		RabbitMQURI:      getEnvOrDefault("RABBITMQ_URI", ""),
		RabbitMQExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", ""),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		LLMAPIKey:        getEnvOrDefault("LLM_API_KEY", ""),
		LLMBaseURL:       getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:         getEnvOrDefault("LLM_MODEL", "gpt-3.5-turbo"),
		YouTubeAPIKey:    getEnvOrDefault("YOUTUBE_API_KEY", ""),
		ArticleSearchURL: getEnvOrDefault("ARTICLE_SEARCH_URL", "https://api.duckduckgo.com/"),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", "your-jwt-secret-key"),
		AllowOrigins:     splitOrigins(getEnvOrDefault("ALLOW_ORIGINS", "http://localhost:3000")),
		ServiceName:      getEnvOrDefault("SERVICE_NAME", "quiz-hub"),
		ServiceVersion:   getEnvOrDefault("SERVICE_VERSION", "1.0.0"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
