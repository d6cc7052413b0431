package config

import "os"

type Config struct {
	Server     ServerConfig
	Postgres   PostgresConfig
	Auth       AuthConfig
	AI         AIConfig
	Classifier ClassifierConfig
	Slack      SlackConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	JWTSecret      string
	JWTAccessTTL   string
	JWTRefreshTTL  string
	AllowSignup    string
	CookieSecure   string
	CookieSameSite string
	CookiePath     string
	CookieDomain   string
	AdminUsername  string
	AdminPassword  string
}

type AIConfig struct {
	APIKey     string
	TextModel  string
	EmbedModel string
}

type ClassifierConfig struct {
	BaseURL string
	Timeout string
}

type SlackConfig struct {
	BotToken        string
	ChannelID       string
	MessageTemplate string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:        getenv("PORT", "8080"),
			CORSOrigins: os.Getenv("CORS_ALLOWED_ORIGINS"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			JWTAccessTTL:   getenv("JWT_ACCESS_TTL", "15m"),
			JWTRefreshTTL:  getenv("JWT_REFRESH_TTL", "720h"),
			AllowSignup:    getenv("ALLOW_SIGNUP", "true"),
			CookieSecure:   os.Getenv("AUTH_COOKIE_SECURE"),
			CookieSameSite: os.Getenv("AUTH_COOKIE_SAMESITE"),
			CookiePath:     os.Getenv("AUTH_COOKIE_PATH"),
			CookieDomain:   os.Getenv("AUTH_COOKIE_DOMAIN"),
			AdminUsername:  os.Getenv("ADMIN_USERNAME"),
			AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		},
		AI: AIConfig{
			APIKey:     os.Getenv("AI_API_KEY"),
			TextModel:  getenv("AI_TEXT_MODEL", "gemini-2.0-flash"),
			EmbedModel: getenv("AI_EMBED_MODEL", "text-embedding-004"),
		},
		Classifier: ClassifierConfig{
			BaseURL: getenv("CLASSIFIER_URL", "http://localhost:8500"),
			Timeout: getenv("CLASSIFIER_TIMEOUT", "10s"),
		},
		Slack: SlackConfig{
			BotToken:        os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:       os.Getenv("SLACK_CHANNEL_ID"),
			MessageTemplate: os.Getenv("SLACK_MESSAGE_TEMPLATE"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
