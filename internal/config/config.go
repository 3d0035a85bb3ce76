package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Notify   NotifyConfig   `yaml:"notify"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Alert    AlertConfig    `yaml:"alert"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,Idempotency-Key"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"   env:"SERVER_RATE_LIMIT_RPS"   env-default:"20"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" env:"SERVER_RATE_LIMIT_BURST" env-default:"40"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
	ConnectAttempts int           `yaml:"connect_attempts"   env:"DATABASE_CONNECT_ATTEMPTS"   env-default:"5"`
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"inventory"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
	BcryptCost     int           `yaml:"bcrypt_cost"      env:"AUTH_BCRYPT_COST"      env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// NotifyConfig holds notification fan-out settings.
type NotifyConfig struct {
	MaxSubscribers  int           `yaml:"max_subscribers"   env:"NOTIFY_MAX_SUBSCRIBERS"   env-default:"1024"`
	SendTimeout     time.Duration `yaml:"send_timeout"      env:"NOTIFY_SEND_TIMEOUT"      env-default:"2s"`
	SendConcurrency int           `yaml:"send_concurrency"  env:"NOTIFY_SEND_CONCURRENCY"  env-default:"32"`
	WSWriteBuffer   int           `yaml:"ws_write_buffer"   env:"NOTIFY_WS_WRITE_BUFFER"   env-default:"64"`
	WSPingPeriod    time.Duration `yaml:"ws_ping_period"    env:"NOTIFY_WS_PING_PERIOD"    env-default:"30s"`
}

// RedisConfig enables request idempotency when Addr is set.
type RedisConfig struct {
	Addr           string        `yaml:"addr"            env:"REDIS_ADDR"`
	Password       string        `yaml:"password"        env:"REDIS_PASSWORD"`
	DB             int           `yaml:"db"              env:"REDIS_DB"              env-default:"0"`
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl" env:"REDIS_IDEMPOTENCY_TTL" env-default:"24h"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig enables the event relay when Brokers is set.
type KafkaConfig struct {
	Brokers string `yaml:"brokers" env:"KAFKA_BROKERS"`
	Topic   string `yaml:"topic"   env:"KAFKA_TOPIC"   env-default:"inventory.events"`
}

// Enabled reports whether at least one broker is configured.
func (c KafkaConfig) Enabled() bool { return strings.TrimSpace(c.Brokers) != "" }

// BrokerList splits the comma-separated broker string.
func (c KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// AlertConfig enables the low-stock webhook when WebhookURL is set.
type AlertConfig struct {
	WebhookURL string        `yaml:"webhook_url" env:"ALERT_WEBHOOK_URL"`
	APIKey     string        `yaml:"api_key"     env:"ALERT_API_KEY"`
	Timeout    time.Duration `yaml:"timeout"     env:"ALERT_TIMEOUT"     env-default:"5s"`
}

// Enabled reports whether a webhook URL is configured.
func (c AlertConfig) Enabled() bool { return c.WebhookURL != "" }

// TracingConfig enables OTLP/HTTP trace export when Endpoint is set.
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"     env:"TRACING_OTLP_ENDPOINT"`
	Insecure    bool    `yaml:"insecure"     env:"TRACING_INSECURE"      env-default:"true"`
	ServiceName string  `yaml:"service_name" env:"TRACING_SERVICE_NAME"  env-default:"inventory-backend"`
	SampleRatio float64 `yaml:"sample_ratio" env:"TRACING_SAMPLE_RATIO"  env-default:"1.0"`
}

// Enabled reports whether an OTLP endpoint is configured.
func (c TracingConfig) Enabled() bool { return c.Endpoint != "" }
