package config

import (
	"github.com/maxviazov/basketball-team-service/internal/logger"
)

// AppConfig identifies the running service instance.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port"`
}

// MongoConfig describes the document store connection. Credentials come from
// the environment (APP_MONGO_USER / APP_MONGO_PASSWORD), never from the file.
type MongoConfig struct {
	URI            string `mapstructure:"uri"`
	Host           string `mapstructure:"host" validate:"required_without=URI"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"db" validate:"required"`
	AuthSource     string `mapstructure:"auth_source"`
	MaxPoolSize    uint64 `mapstructure:"max_pool_size"`
	ConnectTimeout int    `mapstructure:"connect_timeout"`
	PingTimeout    int    `mapstructure:"ping_timeout"`
}

// RateLimitConfig throttles the write path; zero rps disables the limiter.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Config struct {
	App       AppConfig           `mapstructure:"app"`
	Logger    logger.LoggerConfig `mapstructure:"logger"`
	Mongo     MongoConfig         `mapstructure:"mongo"`
	RateLimit RateLimitConfig     `mapstructure:"rate_limit"`
}
