package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	// EnvAPIKey overrides inference.api_key.
	EnvAPIKey = "HUGGINGFACE_API_KEY"
	// EnvDSN overrides database.dsn.
	EnvDSN = "INKWELL_DSN"
	// EnvRedisURL overrides redis_url.
	EnvRedisURL = "INKWELL_REDIS_URL"

	defaultPort       = 8000
	defaultEnv        = "development"
	defaultDBDriver   = DriverMySQL
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "inkwell"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultSQLitePath = "inkwell.db"

	defaultInferenceBaseURL   = "https://api-inference.huggingface.co/models"
	defaultGenerationModel    = "HuggingFaceH4/zephyr-7b-alpha"
	defaultSentimentModel     = "distilbert-base-uncased-finetuned-sst-2-english"
	defaultSummarizationModel = "facebook/bart-large-cnn"
	defaultInferenceTimeout   = 120
	defaultMaxConcurrency     = 10

	defaultRateLimitMax    = 30
	defaultRateLimitWindow = 60
	defaultRecentLimit     = 5
	defaultArchivePrefix   = "articles"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)
