package config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "INFO",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Storage: StorageConfig{
			DSN: "civic_issues.db",
		},
		Uploads: UploadsConfig{
			Dir: "data/uploads",
		},
		ImageGate: ImageGateConfig{
			MinWidth:          100,
			MinHeight:         100,
			MaxWidth:          4000,
			MaxHeight:         4000,
			AllowedExtensions: []string{"png", "jpg", "jpeg", "gif", "webp"},
		},
		Caption: CaptionConfig{
			ModelName:  "microsoft/Florence-2-large",
			TaskPrompt: "Detailed Caption",
			TimeoutSec: 30,
		},
		Scoring: ScoringConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			ModelName:   "openai/gpt-oss-20b",
			Temperature: 0.1,
			MaxTokens:   150,
		},
		Analytics: AnalyticsConfig{
			TimeSeriesDays: 30,
			UrgentLimit:    10,
		},
	}
}
