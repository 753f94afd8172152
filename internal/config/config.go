package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOllama     = "ollama"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	defaultBodyLimit = 10 * 1024 * 1024
)

type Config struct {
	Server           ServerConfig
	LLM              LLMConfig
	Logger           LoggerConfig
	OpenAIAPIKey     string `yaml:"openai_api_key"`
	AnthropicAPIKey  string `yaml:"anthropic_api_key"`
	GeminiAPIKey     string `yaml:"gemini_api_key"`
	OpenRouterAPIKey string `yaml:"openrouter_api_key"`
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// LLMConfig selects and configures the completion backend.
type LLMConfig struct {
	Provider     string `yaml:"provider"`
	Server       string `yaml:"server"`   // ollama server URL
	BaseURL      string `yaml:"base_url"` // overrides the provider's public API endpoint
	DefaultModel string `yaml:"default_model"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Env    string `yaml:"env"`
	Output string `yaml:"output"` // stdout, stderr or a file path
}

// LoadConfig reads config.yaml (optional), a .env file (optional) and the
// process environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.body_limit", defaultBodyLimit)
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.server", "http://localhost:11434")
	v.SetDefault("llm.default_model", "gpt-4o-mini")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.output", "stdout")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(v.GetString("llm.provider")),
			Server:       v.GetString("llm.server"),
			BaseURL:      v.GetString("llm.base_url"),
			DefaultModel: v.GetString("llm.default_model"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("logger.level"),
			Env:    v.GetString("logger.env"),
			Output: v.GetString("logger.output"),
		},
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		AnthropicAPIKey:  v.GetString("anthropic_api_key"),
		GeminiAPIKey:     v.GetString("gemini_api_key"),
		OpenRouterAPIKey: v.GetString("openrouter_api_key"),
	}

	// SERVER_PORT, LLM_PROVIDER, OPENAI_API_KEY etc. come in through AutomaticEnv.
	// ENV is the one legacy name that does not follow the key layout.
	if env := os.Getenv("ENV"); env != "" && os.Getenv("LOGGER_ENV") == "" {
		cfg.Logger.Env = env
	}

	return cfg
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is not set")
		}
	case ProviderOllama:
		if c.LLM.Server == "" {
			return errors.New("llm.server is required for the ollama provider")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is not set")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is not set")
		}
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return errors.New("OPENROUTER_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.BodyLimit <= 0 {
		c.Server.BodyLimit = defaultBodyLimit
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
