package config

import "time"

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultClinicTimezone  = "America/New_York"
	DefaultMessageMaxWords = 500
	DefaultMessageRequired = false

	DefaultClinicAPIURL     = "http://localhost:5000"
	DefaultClinicAPITimeout = 10 * time.Second

	DefaultDraftStore = StoreMemory
	DefaultDraftTTL   = 2 * time.Hour
	DefaultRedisAddr  = "localhost:6379"
	DefaultRedisDB    = 0

	DefaultSubmissionLedger  = StoreMemory
	DefaultSubmissionTTL     = 24 * time.Hour
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "contour"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultKafkaEnabled = false

	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 20

	DefaultCORSAllowedOrigins = "http://localhost:3000"
	DefaultTrustedProxies     = ""

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 64 * 1024 // 64KB, the largest body is a 500-word message

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMetricsEnabled = true
)
