package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret enables bearer auth on the tracking routes; when empty
	// the API runs open.
	JWTSecret        string        `env:"JWT_SECRET"`
	AuthClientID     string        `env:"AUTH_CLIENT_ID"`
	AuthClientSecret string        `env:"AUTH_CLIENT_SECRET_HASH"`
	TokenTTL         time.Duration `env:"TOKEN_TTL, default=1h"`

	CacheTTL        time.Duration `env:"CACHE_TTL,        default=15m"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL, default=30m"`
	RefreshWorkers  int           `env:"REFRESH_WORKERS,  default=4"`

	Mongo MongoConfig
	Redis RedisConfig
	Fetch FetchConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tracking_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=8"`
}

// FetchConfig points the page fetcher at the carrier endpoints. The URLs
// are templates with a %s placeholder for the reference number.
type FetchConfig struct {
	ZimURL       string        `env:"FETCH_ZIM_URL,        default=https://apigw.zim.com/tracking/v1/tracing?consnumber=%s"`
	AirCanadaURL string        `env:"FETCH_AIRCANADA_URL,  default=https://www.aircanadacargo.ca/track/?awb=%s"`
	DatamyneURL  string        `env:"FETCH_DATAMYNE_URL,   default=https://app.datamyne.com/api/bl/search?q=%s"`
	Timeout      time.Duration `env:"FETCH_TIMEOUT,        default=30s"`
	RetryCount   int           `env:"FETCH_RETRY_COUNT,    default=2"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
