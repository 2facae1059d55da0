package gemproxy

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultModel is used when Config.Model is empty. Callers never choose the model.
const DefaultModel = "gemini-2.5-flash"

// DefaultOpenAIBaseURL is Gemini's OpenAI-compatible endpoint, so the openai
// provider reaches the same models by default.
const DefaultOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Config holds the upstream credential and HTTP knobs.
// It is built once at startup and passed to New.
type Config struct {
	// Provider selects the upstream SDK surface; empty means ProviderGoogle.
	Provider Provider

	// APIKey is the upstream credential. With DetectEnv it falls back to
	// GEMINI_API_KEY, then GOOGLE_API_KEY (or OPENAI_API_KEY for ProviderOpenAI).
	APIKey  string
	BaseURL string // optional custom endpoint

	Model string // defaults to DefaultModel
	// SearchModel is used by the openai provider for search-mode calls,
	// since that surface has no retrieval tool. Falls back to Model.
	SearchModel string

	// Shared client options.
	HTTPClient *http.Client
	Timeout    time.Duration // applied to a default HTTP client when HTTPClient is nil

	Logger *slog.Logger

	// DetectEnv pulls missing values from the environment.
	DetectEnv bool
}

// withDefaults returns a copy with env lookups and defaults applied.
func (c Config) withDefaults() Config {
	if c.DetectEnv {
		if c.Provider == "" {
			c.Provider = Provider(strings.ToLower(strings.TrimSpace(os.Getenv("GEMPROXY_PROVIDER"))))
		}
		if c.APIKey == "" {
			c.APIKey = firstEnv(apiKeyEnv(c.Provider)...)
		}
		if c.Model == "" {
			c.Model = strings.TrimSpace(os.Getenv("GEMPROXY_MODEL"))
		}
		if c.SearchModel == "" {
			c.SearchModel = strings.TrimSpace(os.Getenv("GEMPROXY_SEARCH_MODEL"))
		}
		if c.BaseURL == "" {
			c.BaseURL = strings.TrimSpace(os.Getenv("GEMPROXY_BASE_URL"))
		}
	}
	if c.Provider == "" {
		c.Provider = ProviderGoogle
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Provider == ProviderOpenAI && c.BaseURL == "" {
		c.BaseURL = DefaultOpenAIBaseURL
	}
	if c.HTTPClient == nil && c.Timeout > 0 {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Validate reports configuration problems that make every request fail.
// A missing credential matches ErrMissingCredential under errors.Is and names
// the variable the selected provider reads.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderGoogle, ProviderOpenAI:
	default:
		return fmt.Errorf("gemproxy: unknown provider %q", c.Provider)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return missingCredential(c.Provider)
	}
	return nil
}

func apiKeyEnv(p Provider) []string {
	if p == ProviderOpenAI {
		return []string{"OPENAI_API_KEY", "GEMINI_API_KEY"}
	}
	return []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
