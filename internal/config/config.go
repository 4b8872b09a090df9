package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/at-ishikawa/translator/internal/inference/gemini"
	"github.com/at-ishikawa/translator/internal/inference/openai"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider    string            `mapstructure:"provider" validate:"oneof=gemini openai"`
	Gemini      ProviderConfig    `mapstructure:"gemini"`
	OpenAI      ProviderConfig    `mapstructure:"openai"`
	Translation TranslationConfig `mapstructure:"translation"`
	Session     SessionConfig     `mapstructure:"session"`
	Export      ExportConfig      `mapstructure:"export"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type TranslationConfig struct {
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"gte=0"`
	DefaultLanguage   string        `mapstructure:"default_language" validate:"language"`
	DefaultMode       string        `mapstructure:"default_mode" validate:"mode"`
}

type SessionConfig struct {
	HistoryDisplayLimit int `mapstructure:"history_display_limit" validate:"gt=0"`
}

type ExportConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

// ConfigurationError is fatal at startup: no session can run with it
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, ", ")
}

// ActiveProvider returns the settings of the selected provider.
// A missing API key is a ConfigurationError.
func (cfg *Config) ActiveProvider() (ProviderConfig, error) {
	var provider ProviderConfig
	var envName string
	switch cfg.Provider {
	case ProviderGemini:
		provider, envName = cfg.Gemini, "GEMINI_API_KEY"
	case ProviderOpenAI:
		provider, envName = cfg.OpenAI, "OPENAI_API_KEY"
	default:
		return ProviderConfig{}, &ConfigurationError{Problems: []string{fmt.Sprintf("unknown provider %q", cfg.Provider)}}
	}
	if strings.TrimSpace(provider.APIKey) == "" {
		return ProviderConfig{}, &ConfigurationError{Problems: []string{
			fmt.Sprintf("%s environment variable is required for provider %s", envName, cfg.Provider),
		}}
	}
	return provider, nil
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/translator")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("gemini.model", gemini.DefaultModel)
	v.SetDefault("gemini.base_url", gemini.DefaultBaseURL)
	v.SetDefault("openai.model", openai.DefaultModel)
	v.SetDefault("openai.base_url", openai.DefaultBaseURL)
	v.SetDefault("translation.timeout", 30*time.Second)
	v.SetDefault("translation.requests_per_minute", 60)
	v.SetDefault("translation.default_language", "Urdu")
	v.SetDefault("translation.default_mode", "Standard")
	v.SetDefault("session.history_display_limit", 10)
	v.SetDefault("export.directory", ".")

	// environment variables take precedence over the config file
	for key, env := range map[string]string{
		"provider":       "TRANSLATOR_PROVIDER",
		"gemini.api_key": "GEMINI_API_KEY",
		"gemini.model":   "GEMINI_MODEL",
		"openai.api_key": "OPENAI_API_KEY",
		"openai.model":   "OPENAI_MODEL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, &ConfigurationError{Problems: errorMsgs}
	}

	return &cfg, nil
}

// LoadDotEnv exports the variables of a .env file without overriding the environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("gotenv.Load(%s) > %w", path, err)
	}
	return nil
}
