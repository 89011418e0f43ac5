package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config carries every process-wide setting, loaded once at startup and
// passed into component constructors. Nothing reads the environment after
// Load returns.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string `env:"JWT_SECRET, required"`
	// TokenTTL and CookieTTL are deliberately independent durations: the
	// token's embedded expiry and the cookie's lifetime are configured
	// separately.
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h"`
	CookieTTL time.Duration `env:"COOKIE_TTL, default=1h"`

	// OpenRegistration leaves POST /register unauthenticated; when false the
	// route requires an Admin token.
	OpenRegistration bool `env:"OPEN_REGISTRATION, default=false"`
	// OpenSensorIngest leaves POST /weather unauthenticated; when false the
	// route requires a Sensor or Admin token.
	OpenSensorIngest bool `env:"OPEN_SENSOR_INGEST, default=false"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	// PurgeInterval is how often the inactive-student purge runs; zero
	// disables it. StudentRetention is the inactivity window after which a
	// Student account is removed.
	PurgeInterval    time.Duration `env:"PURGE_INTERVAL,    default=24h"`
	StudentRetention time.Duration `env:"STUDENT_RETENTION, default=720h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=weather_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment gates verbose error payloads; production responses never
// include raw error detail.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
