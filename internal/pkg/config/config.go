package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=1h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// Store selects the lead/user persistence backend: "memory" (seeded
	// fixture, default) or "mongo".
	Store string `env:"STORE, default=memory"`

	DocsWorkers int `env:"DOCS_WORKERS, default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Partner PartnerConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vantagepoint_crm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
	// DocsTTL bounds how long a send-docs dedup key suppresses duplicates.
	DocsTTL time.Duration `env:"REDIS_DOCS_TTL, default=24h"`
}

type PartnerConfig struct {
	URL         string `env:"PARTNER_URL"`
	VendorToken string `env:"PARTNER_VENDOR_TOKEN"`
	SalesRep    string `env:"PARTNER_SALES_REP, default=VantagePoint Sales Team"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
