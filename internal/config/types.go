package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	DSN            string                `yaml:"-"`
	RedisURL       string                `yaml:"redis_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Inference      InferenceConfig       `yaml:"inference"`
	Archive        ArchiveConfig         `yaml:"archive"`
	RateLimit      RateLimitConfig       `yaml:"rate_limit"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	RecentLimit    int                   `yaml:"recent_limit"`
}

type DatabaseRuntimeConfig struct {
	Driver    string            `yaml:"driver"` // mysql | sqlite
	DSN       string            `yaml:"dsn"`
	Path      string            `yaml:"path"` // sqlite file
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

// InferenceConfig describes the remote model-serving API.
type InferenceConfig struct {
	BaseURL        string          `yaml:"base_url"`
	APIKey         string          `yaml:"api_key"`
	TimeoutSeconds int             `yaml:"timeout_seconds"`
	MaxConcurrency int             `yaml:"max_concurrency"`
	Models         InferenceModels `yaml:"models"`
}

type InferenceModels struct {
	Generation    string `yaml:"generation"`
	Sentiment     string `yaml:"sentiment"`
	Summarization string `yaml:"summarization"`
}

// ArchiveConfig enables uploading generated articles to S3-compatible storage.
type ArchiveConfig struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	PathStyle       bool   `yaml:"path_style"`
}

type RateLimitConfig struct {
	Max           int `yaml:"max"`
	WindowSeconds int `yaml:"window_seconds"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

// LogDir returns the resolved native log directory.
func (c *AppConfig) LogDir() string {
	return ResolveRuntimePath(c.RuntimeBaseDir(), c.Paths.Logs, "logs")
}

// Timeout returns the outbound request timeout.
func (c InferenceConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Window returns the rate limit window.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}
