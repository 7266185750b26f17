// Package config loads EduDesign settings from .env, an optional YAML file
// and EDUDESIGN_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/edudesign/internal/llm"
)

type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Chat   ChatConfig   `yaml:"chat"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type LLMConfig struct {
	Provider   string        `yaml:"provider" validate:"omitempty,oneof=gemini anthropic openai openrouter mock"`
	Model      string        `yaml:"model"`
	ChatModel  string        `yaml:"chat_model"`
	ImageModel string        `yaml:"image_model"`
	BaseURL    string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout    time.Duration `yaml:"timeout" validate:"min=0"`
}

type ChatConfig struct {
	MaxHistoryTurns int `yaml:"max_history_turns" validate:"min=0,max=200"`
}

type ServerConfig struct {
	Addr              string   `yaml:"addr" validate:"required,hostname_port"`
	RequestsPerMinute int      `yaml:"requests_per_minute" validate:"min=1"`
	Burst             int      `yaml:"burst" validate:"min=1"`
	AllowedOrigins    []string `yaml:"allowed_origins" validate:"required,min=1,dive,required"`
}

type LogConfig struct {
	Mode  string `yaml:"mode" validate:"oneof=dev prod"`
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chat: ChatConfig{MaxHistoryTurns: 20},
		Server: ServerConfig{
			Addr:              "127.0.0.1:8080",
			RequestsPerMinute: 30,
			Burst:             5,
			AllowedOrigins:    []string{"http://localhost:5173"},
		},
		Log: LogConfig{Mode: "dev"},
	}
}

// Load reads configuration. An explicit path must exist; the default
// locations are optional.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = configPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath resolves the config file location:
// 1. EDUDESIGN_CONFIG
// 2. $XDG_CONFIG_HOME/edudesign/config.yaml
// 3. ~/.config/edudesign/config.yaml
func configPath() string {
	if p := os.Getenv("EDUDESIGN_CONFIG"); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "edudesign", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "edudesign", "config.yaml")
}

func (c *Config) applyEnv() {
	if v := os.Getenv("EDUDESIGN_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("EDUDESIGN_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}
	if v := os.Getenv("EDUDESIGN_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.RequestsPerMinute = n
		}
	}
	if v := os.Getenv("EDUDESIGN_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv("EDUDESIGN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("EDUDESIGN_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// LLMConfig builds provider settings. Precedence, lowest first: defaults,
// conventional API key variables, the config file, EDUDESIGN_* variables.
func (c *Config) LLMConfig() llm.Config {
	out := llm.DefaultConfig()
	if provider, ok := llm.LoadStandardKeys(&out); ok {
		out.Provider = provider
	}

	if c.LLM.Provider != "" {
		out.Provider = c.LLM.Provider
	}
	out.SetModels(c.LLM.Model, c.LLM.ChatModel, c.LLM.ImageModel)
	if c.LLM.BaseURL != "" {
		out.OpenAI.BaseURL = c.LLM.BaseURL
		out.OpenRouter.BaseURL = c.LLM.BaseURL
	}
	out.Timeout = c.LLM.Timeout

	llm.ApplyEnv(&out)
	return out
}
