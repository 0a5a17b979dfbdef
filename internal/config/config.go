package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Model provider. The API key and model can be overridden per request
	// via the X-API-Key and X-Model-Name headers.
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Working directories
	MarkdownDir string
	SectionsDir string

	// Upload limits
	MaxUploadBytes int64

	// Segmentation heuristics.
	TitleSizeOffset int
	TitleMaxWords   int

	// Conversation
	HistoryThreshold int

	// Section file naming
	SlugDedup bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		LLMBaseURL: envOr("LLM_BASE_URL", "https://api.deepseek.com/v1"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   envOr("LLM_MODEL", "deepseek-chat"),

		MarkdownDir: envOr("MARKDOWN_DIR", "output_md"),
		SectionsDir: envOr("SECTIONS_DIR", "output_sections"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		TitleSizeOffset: envInt("TITLE_SIZE_OFFSET", 1),
		TitleMaxWords:   envInt("TITLE_MAX_WORDS", 30),

		HistoryThreshold: envInt("HISTORY_THRESHOLD", 6),

		SlugDedup: envBool("SLUG_DEDUP", false),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.TitleSizeOffset <= 0 {
		cfg.TitleSizeOffset = 1
	}
	if cfg.TitleMaxWords <= 0 {
		cfg.TitleMaxWords = 30
	}
	if cfg.HistoryThreshold <= 0 {
		cfg.HistoryThreshold = 6
	}

	return cfg
}

func (c Config) Validate() error {
	if c.LLMBaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL is required")
	}
	if c.MarkdownDir == "" || c.SectionsDir == "" {
		return fmt.Errorf("MARKDOWN_DIR and SECTIONS_DIR are required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
