// Package config provides configuration management for the greeting service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by AI_TEXT_PROVIDER and AI_IMAGE_PROVIDER.
const (
	ProviderNone        = "none"
	ProviderOpenAI      = "openai"
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
)

// Asset backends accepted by ASSET_BACKEND.
const (
	BackendFS    = "fs"
	BackendRedis = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Assets    AssetsConfig
	AI        AIConfig
	Watermark WatermarkConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port          string
	PublicBaseURL string // prefix for image URLs; empty means root-relative
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AssetsConfig holds static asset storage configuration
type AssetsConfig struct {
	Backend          string // "fs" or "redis"
	StaticDir        string
	RedisURL         string
	RedisKeyPrefix   string
	GeneratedTTL     time.Duration // redis only; zero keeps generated images forever
	SeedPlaceholders bool
}

// AIConfig holds external generation service configuration
type AIConfig struct {
	TextProvider  string
	ImageProvider string
	Timeout       time.Duration

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAITextModel  string
	OpenAIImageModel string

	HFAPIKey  string
	HFModel   string
	HFBaseURL string

	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string
}

// WatermarkConfig holds the overlay settings
type WatermarkConfig struct {
	Text     string
	FontPath string
	KeepSize bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "5000"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Assets: AssetsConfig{
			Backend:          getEnv("ASSET_BACKEND", BackendFS),
			StaticDir:        getEnv("STATIC_DIR", "static"),
			RedisURL:         GetSecret("REDIS_URL", "redis://localhost:6379/0"),
			RedisKeyPrefix:   getEnv("REDIS_KEY_PREFIX", "greeting:asset:"),
			GeneratedTTL:     getEnvAsDuration("GENERATED_ASSET_TTL", "0s"),
			SeedPlaceholders: getEnvAsBool("SEED_PLACEHOLDERS", true),
		},
		AI: AIConfig{
			TextProvider:  getEnv("AI_TEXT_PROVIDER", ProviderNone),
			ImageProvider: getEnv("AI_IMAGE_PROVIDER", ProviderNone),
			Timeout:       getEnvAsDuration("AI_TIMEOUT", "60s"),

			OpenAIAPIKey:     GetSecret("OPENAI_API_KEY", ""),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAITextModel:  getEnv("OPENAI_TEXT_MODEL", "gpt-4o-mini"),
			OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", "gpt-image-1"),

			HFAPIKey:  GetSecret("HF_API_KEY", ""),
			HFModel:   getEnv("HF_MODEL", ""),
			HFBaseURL: getEnv("HF_BASE_URL", "https://api-inference.huggingface.co"),

			GeminiAPIKey:     GetSecret("GEMINI_API_KEY", ""),
			GeminiTextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-2.0-flash"),
			GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		},
		Watermark: WatermarkConfig{
			Text:     getEnv("WATERMARK_TEXT", "Ayush"),
			FontPath: getEnv("WATERMARK_FONT", "static/fonts/Poppins-Bold.ttf"),
			KeepSize: getEnvAsBool("WATERMARK_KEEP_SIZE", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	switch c.Assets.Backend {
	case BackendFS:
		if c.Assets.StaticDir == "" {
			return errors.New("STATIC_DIR is required when ASSET_BACKEND=fs")
		}
	case BackendRedis:
		if c.Assets.RedisURL == "" {
			return errors.New("REDIS_URL is required when ASSET_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown ASSET_BACKEND %q", c.Assets.Backend)
	}

	switch c.AI.TextProvider {
	case ProviderNone, "":
	case ProviderOpenAI, ProviderHuggingFace, ProviderGemini:
		if err := c.AI.requireKey(c.AI.TextProvider); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown AI_TEXT_PROVIDER %q", c.AI.TextProvider)
	}

	switch c.AI.ImageProvider {
	case ProviderNone, "":
	case ProviderOpenAI, ProviderGemini:
		if err := c.AI.requireKey(c.AI.ImageProvider); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported AI_IMAGE_PROVIDER %q", c.AI.ImageProvider)
	}
	return nil
}

func (a *AIConfig) requireKey(provider string) error {
	switch provider {
	case ProviderOpenAI:
		if a.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderHuggingFace:
		if a.HFAPIKey == "" {
			return errors.New("HF_API_KEY is required for the huggingface provider")
		}
		if a.HFModel == "" {
			return errors.New("HF_MODEL is required for the huggingface provider")
		}
	case ProviderGemini:
		if a.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini provider")
		}
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}
