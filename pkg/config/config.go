package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"contour/pkg/client"
	httputil "contour/pkg/http"
	"contour/pkg/locale"
	"contour/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	ClinicTimezone  string
	Location        *time.Location
	MessageMaxWords int
	MessageRequired bool

	ClinicAPIURL     string
	ClinicAPITimeout time.Duration
	ClinicAPIToken   string

	DraftStore    string
	DraftTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SubmissionLedger  string
	SubmissionTTL     time.Duration
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	KafkaEnabled bool

	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowedOrigins []string
	TrustedProxies     []string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	MetricsEnabled bool

	Log    *logger.Logger
	Client *client.Client
}

// Load reads .env (if present) and the environment, validates the result and
// exits the process on invalid configuration.
func Load(serviceName string) *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := FromEnv(serviceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv(serviceName string) *Config {
	tz := getEnvStr(EnvClinicTimezone, DefaultClinicTimezone)

	return &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		ClinicTimezone:  tz,
		Location:        locale.LoadLocation(tz),
		MessageMaxWords: getEnvNum(EnvMessageMaxWords, DefaultMessageMaxWords),
		MessageRequired: getEnvBool(EnvMessageRequired, DefaultMessageRequired),

		ClinicAPIURL:     getEnvStr(EnvClinicAPIURL, DefaultClinicAPIURL),
		ClinicAPITimeout: getEnvDuration(EnvClinicAPITimeout, DefaultClinicAPITimeout),
		ClinicAPIToken:   getEnvStr(EnvClinicAPIToken, ""),

		DraftStore:    strings.ToLower(getEnvStr(EnvDraftStore, DefaultDraftStore)),
		DraftTTL:      getEnvDuration(EnvDraftTTL, DefaultDraftTTL),
		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		SubmissionLedger:  strings.ToLower(getEnvStr(EnvSubmissionLedger, DefaultSubmissionLedger)),
		SubmissionTTL:     getEnvDuration(EnvSubmissionTTL, DefaultSubmissionTTL),
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		KafkaEnabled: getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),

		RateLimitRPS:   getEnvFloat(EnvRateLimitRPS, DefaultRateLimitRPS),
		RateLimitBurst: getEnvNum(EnvRateLimitBurst, DefaultRateLimitBurst),

		CORSAllowedOrigins: splitList(getEnvStr(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins)),
		TrustedProxies:     splitList(getEnvStr(EnvTrustedProxies, DefaultTrustedProxies)),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		MetricsEnabled: getEnvBool(EnvMetricsEnabled, DefaultMetricsEnabled),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

// Now returns the current time in the clinic's location.
func (cfg *Config) Now() time.Time {
	return time.Now().In(cfg.Location)
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout)
}

// SetStores opens only the connections the chosen stores need.
func (cfg *Config) SetStores() {
	if cfg.DraftStore == StoreRedis {
		cfg.SetRedis()
	}
	if cfg.SubmissionLedger == StoreMongo {
		cfg.SetMongo()
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.ClinicTimezone != "" {
		if _, err := time.LoadLocation(cfg.ClinicTimezone); err != nil {
			errors = append(errors, fmt.Sprintf("ClinicTimezone must be an IANA timezone, got: %s", cfg.ClinicTimezone))
		}
	}
	if cfg.MessageMaxWords <= 0 {
		errors = append(errors, fmt.Sprintf("MessageMaxWords must be positive, got: %d", cfg.MessageMaxWords))
	}

	if u, err := url.Parse(cfg.ClinicAPIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, fmt.Sprintf("ClinicAPIURL must be an absolute http(s) URL, got: %s", cfg.ClinicAPIURL))
	}
	if cfg.ClinicAPITimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ClinicAPITimeout must be positive, got: %s", cfg.ClinicAPITimeout))
	}

	switch cfg.DraftStore {
	case StoreMemory:
	case StoreRedis:
		if cfg.RedisAddr == "" {
			errors = append(errors, "RedisAddr cannot be empty when DraftStore is redis")
		}
		if cfg.RedisDB < 0 {
			errors = append(errors, fmt.Sprintf("RedisDB cannot be negative, got: %d", cfg.RedisDB))
		}
	default:
		errors = append(errors, fmt.Sprintf("DraftStore must be one of memory, redis, got: %s", cfg.DraftStore))
	}
	if cfg.DraftTTL <= 0 {
		errors = append(errors, fmt.Sprintf("DraftTTL must be positive, got: %s", cfg.DraftTTL))
	}

	switch cfg.SubmissionLedger {
	case StoreMemory:
	case StoreMongo:
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
	default:
		errors = append(errors, fmt.Sprintf("SubmissionLedger must be one of memory, mongo, got: %s", cfg.SubmissionLedger))
	}
	if cfg.SubmissionTTL <= 0 {
		errors = append(errors, fmt.Sprintf("SubmissionTTL must be positive, got: %s", cfg.SubmissionTTL))
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.RateLimitRPS <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRPS must be positive, got: %g", cfg.RateLimitRPS))
	}
	if cfg.RateLimitBurst <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitBurst must be positive, got: %d", cfg.RateLimitBurst))
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		errors = append(errors, "CORSAllowedOrigins cannot be empty")
	}
	if _, err := httputil.ParseTrustedProxies(cfg.TrustedProxies); err != nil {
		errors = append(errors, fmt.Sprintf("TrustedProxies: %v", err))
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"clinic_timezone", cfg.Location.String(),
		"message_max_words", cfg.MessageMaxWords,
		"message_required", cfg.MessageRequired,
		"clinic_api_url", cfg.ClinicAPIURL,
		"clinic_api_timeout", cfg.ClinicAPITimeout,
		"clinic_api_token_set", cfg.ClinicAPIToken != "",
		"draft_store", cfg.DraftStore,
		"draft_ttl", cfg.DraftTTL,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"redis_db", cfg.RedisDB,
		"submission_ledger", cfg.SubmissionLedger,
		"submission_ttl", cfg.SubmissionTTL,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"kafka_enabled", cfg.KafkaEnabled,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"trusted_proxies", cfg.TrustedProxies,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"metrics_enabled", cfg.MetricsEnabled,
	)
}

func (cfg *Config) GracefulShutdown(ctx context.Context) {
	if err := cfg.Client.GracefulShutdown(ctx); err != nil {
		cfg.Log.Error("Failed to close store connections", "error", err)
	}
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
