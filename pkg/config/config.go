package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Model     ModelConfig     `json:"model"`
	Providers ProvidersConfig `json:"providers"`
	Chat      ChatConfig      `json:"chat"`
	Cache     CacheConfig     `json:"cache"`
	Memory    MemoryConfig    `json:"memory"`
	mu        sync.RWMutex
}

type ModelConfig struct {
	Workspace      string  `json:"workspace" env:"SOLACE_MODEL_WORKSPACE"`
	Provider       string  `json:"provider" env:"SOLACE_MODEL_PROVIDER"`
	Name           string  `json:"name" env:"SOLACE_MODEL_NAME"`
	MaxTokens      int     `json:"max_tokens" env:"SOLACE_MODEL_MAX_TOKENS"`
	FastMaxTokens  int     `json:"fast_max_tokens" env:"SOLACE_MODEL_FAST_MAX_TOKENS"`
	Temperature    float64 `json:"temperature" env:"SOLACE_MODEL_TEMPERATURE"`
	TopP           float64 `json:"top_p" env:"SOLACE_MODEL_TOP_P"`
	TimeoutSec     int     `json:"timeout_seconds" env:"SOLACE_MODEL_TIMEOUT_SECONDS"`
	FastTimeoutSec int     `json:"fast_timeout_seconds" env:"SOLACE_MODEL_FAST_TIMEOUT_SECONDS"`
}

type ProvidersConfig struct {
	Ollama OllamaConfig `json:"ollama"`
	OpenAI OpenAIConfig `json:"openai"`
}

type OllamaConfig struct {
	Host string `json:"host" env:"SOLACE_PROVIDERS_OLLAMA_HOST"`
}

type OpenAIConfig struct {
	APIKey  string `json:"api_key" env:"SOLACE_PROVIDERS_OPENAI_API_KEY"`
	APIBase string `json:"api_base" env:"SOLACE_PROVIDERS_OPENAI_API_BASE"`
	Proxy   string `json:"proxy,omitempty" env:"SOLACE_PROVIDERS_OPENAI_PROXY"`
}

type ChatConfig struct {
	HistoryWindow     int  `json:"history_window" env:"SOLACE_CHAT_HISTORY_WINDOW"`
	FastHistoryWindow int  `json:"fast_history_window" env:"SOLACE_CHAT_FAST_HISTORY_WINDOW"`
	TurnCharLimit     int  `json:"turn_char_limit" env:"SOLACE_CHAT_TURN_CHAR_LIMIT"`
	MemoryTopK        int  `json:"memory_top_k" env:"SOLACE_CHAT_MEMORY_TOP_K"`
	FastMemoryTopK    int  `json:"fast_memory_top_k" env:"SOLACE_CHAT_FAST_MEMORY_TOP_K"`
	FastModeMaxChars  int  `json:"fast_mode_max_chars" env:"SOLACE_CHAT_FAST_MODE_MAX_CHARS"`
	EchoOnly          bool `json:"echo_only" env:"SOLACE_CHAT_ECHO_ONLY"`
}

type CacheConfig struct {
	TTLDays       int    `json:"ttl_days" env:"SOLACE_CACHE_TTL_DAYS"`
	HotEntries    int    `json:"hot_entries" env:"SOLACE_CACHE_HOT_ENTRIES"`
	SweepSchedule string `json:"sweep_schedule" env:"SOLACE_CACHE_SWEEP_SCHEDULE"`
}

type MemoryConfig struct {
	TopK           int `json:"top_k" env:"SOLACE_MEMORY_TOP_K"`
	CandidateLimit int `json:"candidate_limit" env:"SOLACE_MEMORY_CANDIDATE_LIMIT"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Workspace:      "~/.solace/workspace",
			Provider:       "ollama",
			Name:           "mistral:7b",
			MaxTokens:      200,
			FastMaxTokens:  150,
			Temperature:    0.8,
			TopP:           0.9,
			TimeoutSec:     35,
			FastTimeoutSec: 20,
		},
		Providers: ProvidersConfig{
			Ollama: OllamaConfig{Host: "http://localhost:11434"},
			OpenAI: OpenAIConfig{},
		},
		Chat: ChatConfig{
			HistoryWindow:     4,
			FastHistoryWindow: 2,
			TurnCharLimit:     200,
			MemoryTopK:        3,
			FastMemoryTopK:    2,
			FastModeMaxChars:  160,
		},
		Cache: CacheConfig{
			TTLDays:       7,
			HotEntries:    256,
			SweepSchedule: "*/15 * * * *",
		},
		Memory: MemoryConfig{
			TopK:           3,
			CandidateLimit: 80,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func (c *Config) WorkspacePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return expandHome(c.Model.Workspace)
}

func (c *Config) OllamaHost() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Providers.Ollama.Host != "" {
		return c.Providers.Ollama.Host
	}
	return "http://localhost:11434"
}

func (c *Config) OpenAIBase() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Providers.OpenAI.APIBase != "" {
		return c.Providers.OpenAI.APIBase
	}
	return "https://api.openai.com/v1"
}

// Validate catches values that would silently misbehave downstream.
func (c *Config) Validate() error {
	if c.Chat.HistoryWindow < c.Chat.FastHistoryWindow {
		return fmt.Errorf("history_window (%d) must be >= fast_history_window (%d)",
			c.Chat.HistoryWindow, c.Chat.FastHistoryWindow)
	}
	if c.Cache.TTLDays <= 0 {
		return fmt.Errorf("cache ttl_days must be positive, got %d", c.Cache.TTLDays)
	}
	return nil
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
