package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Vision  VisionConfig
	History HistoryConfig
	Speech  SpeechConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	vision, err := loadVisionConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Log:     loadLogConfig(),
		Vision:  vision,
		History: loadHistoryConfig(),
		Speech:  speech,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// LogConfig controls log level and output format.
type LogConfig struct {
	Level  string // trace|debug|info|warn|error
	Format string // json|console
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
	}
}

// VisionConfig describes the hosted vision model.
type VisionConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	MaxOutputTokens int
}

// Enabled reports whether a credential is present; the orchestrator refuses
// send attempts when it is not.
func (c VisionConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadVisionConfig() (VisionConfig, error) {
	maxOut, err := parseOptionalIntEnv("VISION_MAX_OUTPUT_TOKENS")
	if err != nil {
		return VisionConfig{}, err
	}
	maxOutTokens := 2048
	if maxOut != nil {
		maxOutTokens = *maxOut
	}

	return VisionConfig{
		APIKey:          strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		BaseURL:         getEnvOrDefault("VISION_BASE_URL", ""),
		Model:           getEnvOrDefault("VISION_MODEL", "gemini-1.5-flash-latest"),
		MaxOutputTokens: maxOutTokens,
	}, nil
}

// HistoryConfig describes opt-in history persistence.
type HistoryConfig struct {
	FilePath string
}

func loadHistoryConfig() HistoryConfig {
	return HistoryConfig{
		FilePath: getEnvOrDefault("HISTORY_FILE", "history.json"),
	}
}

// SpeechConfig describes the optional offline text-to-speech engine.
type SpeechConfig struct {
	Command  string // explicit engine binary; auto-detected when empty
	Disabled bool
}

func loadSpeechConfig() (SpeechConfig, error) {
	disabled, err := parseBoolEnv("SPEECH_DISABLED", false)
	if err != nil {
		return SpeechConfig{}, err
	}

	return SpeechConfig{
		Command:  strings.TrimSpace(os.Getenv("SPEECH_COMMAND")),
		Disabled: disabled,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
