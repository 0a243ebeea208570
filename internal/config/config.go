package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tripwise/pkg/utils"
)

const (
	ProviderMistral = "mistral"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"

	MistralBaseURL = "https://api.mistral.ai/v1"
)

type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Session  SessionConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Log      LogConfig
	PDF      PDFConfig
}

type ServerConfig struct {
	Port string
}

// LLMConfig selects the text-generation provider and carries its bearer credential.
type LLMConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

type SessionConfig struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	Secure     bool
}

// RedisConfig enables the redis session store when Address is set.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// DatabaseConfig enables the itinerary archive when URL is set.
type DatabaseConfig struct {
	URL string
}

type LogConfig struct {
	Level  string
	Format string
}

type PDFConfig struct {
	Compress bool
}

// Load reads .env (when present), an optional config.yaml and the environment.
// A missing provider credential is an error; callers treat it as fatal.
func Load() (*Config, error) {
	// .env is optional; the real environment wins over it
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return LoadFrom(v)
}

// LoadFrom resolves the configuration from v plus the environment.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	bindEnv(v)

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
			BaseURL:  v.GetString("llm.base_url"),
			Model:    v.GetString("llm.model"),
		},
		Session: SessionConfig{
			CookieName: v.GetString("session.cookie_name"),
			Secret:     v.GetString("session.secret"),
			TTL:        v.GetDuration("session.ttl"),
			Secure:     v.GetBool("session.secure"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		PDF: PDFConfig{
			Compress: v.GetBool("pdf.compress"),
		},
	}

	apiKey := v.GetString("llm.api_key")
	switch cfg.LLM.Provider {
	case ProviderMistral:
		if apiKey == "" {
			apiKey = v.GetString("llm.mistral_api_key")
		}
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = MistralBaseURL
		}
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = "mistral-tiny"
		}
	case ProviderOpenAI:
		if apiKey == "" {
			apiKey = v.GetString("llm.openai_api_key")
		}
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = "gpt-4o-mini"
		}
	case ProviderGemini:
		if apiKey == "" {
			apiKey = v.GetString("llm.gemini_api_key")
		}
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = "gemini-1.5-flash"
		}
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q. Use 'mistral', 'openai' or 'gemini'", cfg.LLM.Provider)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s for the %s provider", utils.ErrMissingCredential, credentialEnv(cfg.LLM.Provider), cfg.LLM.Provider)
	}
	cfg.LLM.APIKey = apiKey

	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", cfg.Session.TTL)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("llm.provider", ProviderMistral)
	v.SetDefault("session.cookie_name", "tripwise_session")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("pdf.compress", true)
}

func bindEnv(v *viper.Viper) {
	bindings := map[string]string{
		"server.port":         "PORT",
		"llm.provider":        "LLM_PROVIDER",
		"llm.api_key":         "LLM_API_KEY",
		"llm.mistral_api_key": "MISTRAL_API_KEY",
		"llm.openai_api_key":  "OPENAI_API_KEY",
		"llm.gemini_api_key":  "GEMINI_API_KEY",
		"llm.base_url":        "LLM_BASE_URL",
		"llm.model":           "LLM_MODEL",
		"session.cookie_name": "SESSION_COOKIE_NAME",
		"session.secret":      "SESSION_SECRET",
		"session.ttl":         "SESSION_TTL",
		"session.secure":      "SESSION_SECURE",
		"redis.address":       "REDIS_ADDR",
		"redis.password":      "REDIS_PASSWORD",
		"redis.db":            "REDIS_DB",
		"database.url":        "POSTGRES_URL",
		"log.level":           "LOG_LEVEL",
		"log.format":          "LOG_FORMAT",
		"pdf.compress":        "PDF_COMPRESS",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
}

func credentialEnv(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "MISTRAL_API_KEY"
	}
}
