package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	LLM         LLMConfig     `toml:"llm"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Claude      ClaudeConfig  `toml:"claude"`
	PDF         PDFConfig     `toml:"pdf"`
}

type ServerConfig struct {
	Port           int      `toml:"port"`
	Host           string   `toml:"host"`
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins, "*" allows any
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// LLMProvider represents the extraction provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
	// LLMProviderFixture serves a stored analysis from llm.fixture_path
	LLMProviderFixture LLMProvider = "fixture"
)

// LLMConfig contains settings shared by all extraction providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "gemini", "claude" or "fixture" (default: "gemini")
	Timeout         string      `toml:"timeout"`          // Per-document timeout (default: "3m")
	MaxRetries      int         `toml:"max_retries"`      // Retries on rate limit / transient errors (default: 1)
	FixturePath     string      `toml:"fixture_path"`     // AnalysisResult JSON served by the fixture provider
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`       // default: "gemini-2.5-flash"
	RateLimit   string  `toml:"rate_limit"`  // Minimum spacing between calls (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature"` // default: 0.1
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`      // default: "claude-sonnet-4-5"
	MaxTokens   int     `toml:"max_tokens"` // default: 8192
	RateLimit   string  `toml:"rate_limit"` // default: "1s"
	Temperature float32 `toml:"temperature"`
}

// PDFConfig limits accepted uploads
type PDFConfig struct {
	MaxSizeMB int `toml:"max_size_mb"` // default: 20
	MaxPages  int `toml:"max_pages"`   // 0 disables the check
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:           8086,
			Host:           "localhost",
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
			Timeout:         "3m",
			MaxRetries:      1,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			RateLimit:   "4s",
			Temperature: 0.1,
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-5",
			MaxTokens:   8192,
			RateLimit:   "1s",
			Temperature: 0.1,
		},
		PDF: PDFConfig{
			MaxSizeMB: 20,
			MaxPages:  0,
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> env.
// Later files override earlier files. CLI flags are applied separately by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal merges with existing values
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BRF_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("BRF_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("BRF_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("BRF_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("BRF_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitList(output)
	}

	if provider := os.Getenv("BRF_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(provider))
	}
	if fixture := os.Getenv("BRF_LLM_FIXTURE"); fixture != "" {
		config.LLM.FixturePath = fixture
	}
	if timeout := os.Getenv("BRF_LLM_TIMEOUT"); timeout != "" {
		config.LLM.Timeout = timeout
	}
	if retries := os.Getenv("BRF_LLM_MAX_RETRIES"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil {
			config.LLM.MaxRetries = r
		}
	}

	if model := os.Getenv("BRF_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if model := os.Getenv("BRF_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}

	if size := os.Getenv("BRF_PDF_MAX_SIZE_MB"); size != "" {
		if s, err := strconv.Atoi(size); err == nil {
			config.PDF.MaxSizeMB = s
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ResolveAPIKey resolves an API key by name with environment variable priority.
// Resolution order: environment variables -> config fallback -> error
func ResolveAPIKey(name string, configFallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key":    {"BRF_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"anthropic_api_key": {"BRF_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
	}

	for _, envVarName := range keyToEnvMapping[name] {
		if envValue := os.Getenv(envVarName); envValue != "" {
			return envValue, nil
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// ParseDuration parses a duration string, returning fallback when empty or invalid
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// MaxPDFBytes returns the configured upload limit in bytes
func (c *Config) MaxPDFBytes() int64 {
	if c.PDF.MaxSizeMB <= 0 {
		return 20 << 20
	}
	return int64(c.PDF.MaxSizeMB) << 20
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
