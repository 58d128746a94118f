package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type rawAppConfig struct {
	Port               int                 `yaml:"port"`
	Env                string              `yaml:"env"`
	DSN                string              `yaml:"dsn"`
	DatabaseURL        string              `yaml:"database_url"`
	RedisURL           string              `yaml:"redis_url"`
	Database           rawDatabaseConfig   `yaml:"database"`
	Inference          rawInferenceConfig  `yaml:"inference"`
	HuggingFaceAPIKey  string              `yaml:"huggingface_api_key"`
	Archive            rawArchiveConfig    `yaml:"archive"`
	RateLimit          rawRateLimitConfig  `yaml:"rate_limit"`
	Paths              RuntimePathsConfig  `yaml:"paths"`
	LogDir             string              `yaml:"log_dir"`
	AllowedOrigins     []string            `yaml:"allowed_origins"`
	CORSAllowedOrigins []string            `yaml:"cors_allowed_origins"`
	RecentLimit        *int                `yaml:"recent_limit"`
}

type rawDatabaseConfig struct {
	Driver    string            `yaml:"driver"`
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Path      string            `yaml:"path"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime *bool             `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type rawInferenceConfig struct {
	BaseURL        string          `yaml:"base_url"`
	APIKey         string          `yaml:"api_key"`
	TimeoutSeconds *int            `yaml:"timeout_seconds"`
	MaxConcurrency int             `yaml:"max_concurrency"`
	Models         InferenceModels `yaml:"models"`
}

type rawArchiveConfig struct {
	Enable          *bool  `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	PathStyle       *bool  `yaml:"path_style"`
}

type rawRateLimitConfig struct {
	Max           int `yaml:"max"`
	WindowSeconds int `yaml:"window_seconds"`
}

// Load reads the YAML config at configPath, applies defaults and
// environment overrides, and validates the result.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document into an AppConfig.
func Parse(content []byte) (*AppConfig, error) {
	cfg := defaultAppConfig()
	raw := rawAppConfig{}
	if len(bytes.TrimSpace(content)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
	}

	applyRawAppConfig(&cfg, raw)
	applyEnvOverrides(&cfg, os.LookupEnv)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	cfg := AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Driver:    defaultDBDriver,
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Inference: InferenceConfig{
			BaseURL:        defaultInferenceBaseURL,
			TimeoutSeconds: defaultInferenceTimeout,
			MaxConcurrency: defaultMaxConcurrency,
			Models: InferenceModels{
				Generation:    defaultGenerationModel,
				Sentiment:     defaultSentimentModel,
				Summarization: defaultSummarizationModel,
			},
		},
		Archive: ArchiveConfig{
			Prefix: defaultArchivePrefix,
		},
		RateLimit: RateLimitConfig{
			Max:           defaultRateLimitMax,
			WindowSeconds: defaultRateLimitWindow,
		},
		RecentLimit: defaultRecentLimit,
	}
	cfg.DSN = cfg.Database.DSNValue()
	return cfg
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	cfg.Database = applyRawDatabaseConfig(cfg.Database, raw)
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.RedisURL = v
	}

	inf := cfg.Inference
	if v := strings.TrimSpace(raw.Inference.BaseURL); v != "" {
		inf.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Inference.APIKey); v != "" {
		inf.APIKey = v
	}
	if v := strings.TrimSpace(raw.HuggingFaceAPIKey); v != "" {
		inf.APIKey = v
	}
	if raw.Inference.TimeoutSeconds != nil {
		inf.TimeoutSeconds = *raw.Inference.TimeoutSeconds
	}
	if raw.Inference.MaxConcurrency != 0 {
		inf.MaxConcurrency = raw.Inference.MaxConcurrency
	}
	if v := strings.TrimSpace(raw.Inference.Models.Generation); v != "" {
		inf.Models.Generation = v
	}
	if v := strings.TrimSpace(raw.Inference.Models.Sentiment); v != "" {
		inf.Models.Sentiment = v
	}
	if v := strings.TrimSpace(raw.Inference.Models.Summarization); v != "" {
		inf.Models.Summarization = v
	}
	cfg.Inference = inf

	arc := cfg.Archive
	if raw.Archive.Enable != nil {
		arc.Enable = *raw.Archive.Enable
	}
	if v := strings.TrimSpace(raw.Archive.Endpoint); v != "" {
		arc.Endpoint = v
	}
	if v := strings.TrimSpace(raw.Archive.Region); v != "" {
		arc.Region = v
	}
	if v := strings.TrimSpace(raw.Archive.Bucket); v != "" {
		arc.Bucket = v
	}
	if v := strings.TrimSpace(raw.Archive.AccessKeyID); v != "" {
		arc.AccessKeyID = v
	}
	if v := strings.TrimSpace(raw.Archive.SecretAccessKey); v != "" {
		arc.SecretAccessKey = v
	}
	if v := strings.TrimSpace(raw.Archive.Prefix); v != "" {
		arc.Prefix = v
	}
	if raw.Archive.PathStyle != nil {
		arc.PathStyle = *raw.Archive.PathStyle
	}
	cfg.Archive = arc

	if raw.RateLimit.Max != 0 {
		cfg.RateLimit.Max = raw.RateLimit.Max
	}
	if raw.RateLimit.WindowSeconds != 0 {
		cfg.RateLimit.WindowSeconds = raw.RateLimit.WindowSeconds
	}

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSAllowedOrigins)
	}
	if raw.RecentLimit != nil {
		cfg.RecentLimit = *raw.RecentLimit
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Inference.BaseURL = strings.TrimRight(cfg.Inference.BaseURL, "/")
	cfg.DSN = cfg.Database.DSNValue()
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawAppConfig) DatabaseRuntimeConfig {
	cfg := current
	db := raw.Database
	if v := strings.TrimSpace(db.Driver); v != "" {
		cfg.Driver = v
	}
	if v := strings.TrimSpace(db.DSN); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(db.URL); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.DSN); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.DatabaseURL); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(db.Path); v != "" {
		cfg.Path = v
	}
	if v := strings.TrimSpace(db.Host); v != "" {
		cfg.Host = v
	}
	if db.Port != 0 {
		cfg.Port = db.Port
	}
	if v := strings.TrimSpace(db.User); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(db.Username); v != "" && strings.TrimSpace(db.User) == "" {
		cfg.User = v
	}
	if db.Password != "" {
		cfg.Password = db.Password
	}
	if v := strings.TrimSpace(db.Name); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(db.DBName); v != "" && strings.TrimSpace(db.Name) == "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(db.Charset); v != "" {
		cfg.Charset = v
	}
	if db.ParseTime != nil {
		cfg.ParseTime = *db.ParseTime
	}
	if v := strings.TrimSpace(db.Loc); v != "" {
		cfg.Loc = v
	}
	if db.Params != nil {
		cfg.Params = copyStringMap(db.Params)
	}
	cfg.Driver = normalizeDriver(cfg.Driver)
	return cfg
}

// applyEnvOverrides lets secrets come from the process environment instead of the file.
func applyEnvOverrides(cfg *AppConfig, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok && strings.TrimSpace(v) != "" {
		cfg.Inference.APIKey = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDSN); ok && strings.TrimSpace(v) != "" {
		cfg.Database.DSN = strings.TrimSpace(v)
		cfg.DSN = cfg.Database.DSNValue()
	}
	if v, ok := lookup(EnvRedisURL); ok && strings.TrimSpace(v) != "" {
		cfg.RedisURL = strings.TrimSpace(v)
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	switch cfg.Database.Driver {
	case DriverMySQL:
		if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
			return fmt.Errorf("invalid database.port %d, expected 1-65535", cfg.Database.Port)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported database.driver %q, expected mysql or sqlite", cfg.Database.Driver)
	}
	if cfg.Inference.MaxConcurrency < 1 {
		return fmt.Errorf("invalid inference.max_concurrency %d, expected >= 1", cfg.Inference.MaxConcurrency)
	}
	if cfg.Inference.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid inference.timeout_seconds %d, expected >= 0", cfg.Inference.TimeoutSeconds)
	}
	if cfg.Inference.BaseURL == "" {
		return fmt.Errorf("inference.base_url is required")
	}
	if cfg.RateLimit.Max < 1 || cfg.RateLimit.WindowSeconds < 1 {
		return fmt.Errorf("invalid rate_limit, max and window_seconds must be >= 1")
	}
	if cfg.RecentLimit < 0 {
		return fmt.Errorf("invalid recent_limit %d, expected >= 0", cfg.RecentLimit)
	}
	if cfg.Archive.Enable && (cfg.Archive.Bucket == "" || cfg.Archive.Region == "") {
		return fmt.Errorf("archive is enabled but archive.bucket or archive.region is empty")
	}
	return nil
}
