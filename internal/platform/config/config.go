package config

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Uploads   UploadsConfig   `yaml:"uploads"`
	ImageGate ImageGateConfig `yaml:"image_gate"`
	Caption   CaptionConfig   `yaml:"caption"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

type ServerConfig struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

type UploadsConfig struct {
	Dir string `yaml:"dir"`
}

// ImageGateConfig carries the acceptance policy for uploaded photos.
type ImageGateConfig struct {
	MinWidth          int      `yaml:"min_width"`
	MinHeight         int      `yaml:"min_height"`
	MaxWidth          int      `yaml:"max_width"`
	MaxHeight         int      `yaml:"max_height"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// CaptionConfig describes the remote captioning service. An empty BaseURL
// means the capability is absent for the lifetime of the process.
type CaptionConfig struct {
	BaseURL    string `yaml:"url"`
	ModelName  string `yaml:"model_name"`
	TaskPrompt string `yaml:"task_prompt"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// ScoringConfig describes the OpenAI-compatible chat completion service used
// for relevance scoring. A missing APIKey is valid configuration; the call is
// still attempted and fails at the transport layer.
type ScoringConfig struct {
	BaseURL     string  `yaml:"url"`
	APIKey      string  `yaml:"api_key"`
	ModelName   string  `yaml:"model_name"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type AnalyticsConfig struct {
	TimeSeriesDays int `yaml:"time_series_days"`
	UrgentLimit    int `yaml:"urgent_limit"`
}
