package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvClinicTimezone  = "CLINIC_TIMEZONE"
	EnvMessageMaxWords = "MESSAGE_MAX_WORDS"
	EnvMessageRequired = "MESSAGE_REQUIRED"

	EnvClinicAPIURL     = "CLINIC_API_URL"
	EnvClinicAPITimeout = "CLINIC_API_TIMEOUT"
	EnvClinicAPIToken   = "CLINIC_API_TOKEN"

	EnvDraftStore    = "DRAFT_STORE"
	EnvDraftTTL      = "DRAFT_TTL"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvSubmissionLedger  = "SUBMISSION_LEDGER"
	EnvSubmissionTTL     = "SUBMISSION_TTL"
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvKafkaEnabled = "KAFKA_ENABLED"

	EnvRateLimitRPS   = "RATE_LIMIT_RPS"
	EnvRateLimitBurst = "RATE_LIMIT_BURST"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvTrustedProxies     = "TRUSTED_PROXIES"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMetricsEnabled = "METRICS_ENABLED"
)
