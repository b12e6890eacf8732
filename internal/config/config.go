package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Chain      ChainConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	Environment  string        `envconfig:"ENVIRONMENT" default:"development"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"3306"`
	User            string        `envconfig:"DB_USER" default:"app"`
	Password        string        `envconfig:"DB_PASSWORD" default:"apppassword"`
	Name            string        `envconfig:"DB_NAME" default:"agent_gateway"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type ChainConfig struct {
	RPCURL          string        `envconfig:"CHAIN_RPC_URL" default:"http://localhost:8545"`
	TokenAddress    string        `envconfig:"TOKEN_ADDRESS" default:"0x8ccedbAe4916b79da7F3F612EfB2EB93A2bFD6cF"`
	TreasuryAddress string        `envconfig:"TREASURY_ADDRESS" default:""`
	TokenDecimals   int           `envconfig:"TOKEN_DECIMALS" default:"6"`
	PriceUnits      int64         `envconfig:"GENERATION_PRICE_UNITS" default:"150000"`
	MaxTxAge        time.Duration `envconfig:"PAYMENT_MAX_AGE" default:"5m"`
	ReadTimeout     time.Duration `envconfig:"CHAIN_READ_TIMEOUT" default:"5s"`
}

type GenerationConfig struct {
	URL     string        `envconfig:"GENERATION_URL" default:"https://x402pay.to/api/dgelei"`
	Timeout time.Duration `envconfig:"GENERATION_TIMEOUT" default:"60s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
