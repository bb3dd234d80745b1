package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported generation providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderMock   = "mock"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	AI       AIConfig
	Assembly AssemblyAIConfig
	Capture  CaptureConfig
	Driver   DriverConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	APIKey          string   `envconfig:"API_KEY"`
	MaxUploadMB     int64    `envconfig:"MAX_UPLOAD_MB" default:"100"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_notes"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-notes"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL"`
}

// AIConfig holds the summary generation configuration.
// The provider falls back to mock when its API key is missing.
type AIConfig struct {
	Provider           string        `envconfig:"AI_PROVIDER" default:"openai"`
	OpenAIAPIKey       string        `envconfig:"OPENAI_API_KEY"`
	OpenAIModel        string        `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	GeminiAPIKey       string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel        string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GroqAPIKey         string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL        string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel          string        `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	MaxTranscriptChars int           `envconfig:"SUMMARY_MAX_TRANSCRIPT_CHARS" default:"4000"`
	Timeout            time.Duration `envconfig:"SUMMARY_TIMEOUT" default:"60s"`
}

// APIKeyFor returns the credential configured for a provider
func (c AIConfig) APIKeyFor(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderGroq:
		return c.GroqAPIKey
	}
	return ""
}

// AssemblyAIConfig holds transcription configuration
type AssemblyAIConfig struct {
	APIKey     string `envconfig:"ASSEMBLYAI_API_KEY"`
	Language   string `envconfig:"ASSEMBLYAI_LANGUAGE" default:"en"`
	FFmpegPath string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
}

// CaptureConfig holds live caption capture configuration
type CaptureConfig struct {
	PollInterval    time.Duration `envconfig:"CAPTURE_POLL_INTERVAL" default:"2s"`
	Duration        time.Duration `envconfig:"CAPTURE_DURATION" default:"30s"`
	Workers         int           `envconfig:"CAPTURE_WORKERS" default:"2"`
	JobPollInterval time.Duration `envconfig:"CAPTURE_JOB_POLL_INTERVAL" default:"5s"`
	WebhookSecret   string        `envconfig:"CAPTION_WEBHOOK_SECRET"`
}

// DriverConfig holds the call automation driver endpoint
type DriverConfig struct {
	URL         string `envconfig:"DRIVER_URL"`
	CallbackURL string `envconfig:"DRIVER_CALLBACK_URL" default:"http://localhost:8080/v1/captures"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnv fills every section from the process environment without reading .env
func FromEnv() (*Config, error) {
	config := &Config{}
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Redis,
		&config.Storage,
		&config.AI,
		&config.Assembly,
		&config.Capture,
		&config.Driver,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}
	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderGroq, ProviderMock:
	default:
		return fmt.Errorf("AI_PROVIDER must be one of openai, gemini, groq, mock (got %q)", c.AI.Provider)
	}
	if c.AI.MaxTranscriptChars <= 0 {
		return fmt.Errorf("SUMMARY_MAX_TRANSCRIPT_CHARS must be positive")
	}
	if c.Capture.PollInterval <= 0 {
		return fmt.Errorf("CAPTURE_POLL_INTERVAL must be positive")
	}
	if c.Capture.Duration < c.Capture.PollInterval {
		return fmt.Errorf("CAPTURE_DURATION must be at least CAPTURE_POLL_INTERVAL")
	}
	if c.Capture.Workers < 1 {
		return fmt.Errorf("CAPTURE_WORKERS must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
