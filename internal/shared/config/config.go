package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port                 string
	Env                  string
	CORSAllowOrigin      []string
	GeminiAPIKey         string
	AnalysisModel        string
	ChatModel            string
	LLMTimeout           time.Duration
	LLMMaxRetries        int
	MaxUploadBytes       int64
	SessionSweepInterval time.Duration
	DatabaseURL          string
	LogJSON              bool
	LogDebug             bool
}

const (
	DefaultAnalysisModel = "gemini-2.5-pro"
	DefaultChatModel     = "gemini-2.5-flash"
	DefaultMaxUpload     = 5 << 20 // 5MB
)

// Load reads configuration from environment variables with sensible defaults.
// Flags, when given, take precedence over the environment for the keys they bind.
func Load(flags *pflag.FlagSet) Config {
	// Best-effort load of local env files for dev convenience; existing env wins.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	v.SetDefault("port", "5001")
	v.SetDefault("env", "dev")
	v.SetDefault("cors_allow_origins", "*")
	v.SetDefault("analysis_model", DefaultAnalysisModel)
	v.SetDefault("chat_model", DefaultChatModel)
	v.SetDefault("llm_timeout", "120s")
	v.SetDefault("llm_max_retries", 1)
	v.SetDefault("max_upload_bytes", DefaultMaxUpload)
	v.SetDefault("session_sweep_interval", "1h")
	v.SetDefault("log_json", true)
	v.SetDefault("log_debug", false)

	v.AutomaticEnv()
	// GOOGLE_API_KEY is accepted as a fallback name for the Gemini key.
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("database_url", "DATABASE_URL")

	if flags != nil {
		bindFlag(v, flags, "port", "port")
		bindFlag(v, flags, "log_json", "json")
		bindFlag(v, flags, "log_debug", "debug")
	}

	return Config{
		Port:                 strings.TrimSpace(v.GetString("port")),
		Env:                  normalizeEnv(v.GetString("env")),
		CORSAllowOrigin:      splitAndTrim(v.GetString("cors_allow_origins")),
		GeminiAPIKey:         strings.TrimSpace(v.GetString("gemini_api_key")),
		AnalysisModel:        orDefault(v.GetString("analysis_model"), DefaultAnalysisModel),
		ChatModel:            orDefault(v.GetString("chat_model"), DefaultChatModel),
		LLMTimeout:           positiveDuration(v.GetDuration("llm_timeout"), 120*time.Second),
		LLMMaxRetries:        max(v.GetInt("llm_max_retries"), 0),
		MaxUploadBytes:       positiveInt64(v.GetInt64("max_upload_bytes"), DefaultMaxUpload),
		SessionSweepInterval: positiveDuration(v.GetDuration("session_sweep_interval"), time.Hour),
		DatabaseURL:          strings.TrimSpace(v.GetString("database_url")),
		LogJSON:              v.GetBool("log_json"),
		LogDebug:             v.GetBool("log_debug"),
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		// Missing files are expected outside local development.
		_ = godotenv.Load(path)
	}
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	if f := flags.Lookup(name); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func orDefault(val, def string) string {
	if trimmed := strings.TrimSpace(val); trimmed != "" {
		return trimmed
	}
	return def
}

func positiveDuration(val, def time.Duration) time.Duration {
	if val <= 0 {
		return def
	}
	return val
}

func positiveInt64(val, def int64) int64 {
	if val <= 0 {
		return def
	}
	return val
}
