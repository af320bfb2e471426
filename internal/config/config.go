package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidDepthLimit = errors.New("engine depth limit must be positive")

type Config struct {
	LogLevel  string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis     Redis         `yaml:"redis"`
	Engine    Engine        `yaml:"engine"`
	ReportTTL time.Duration `yaml:"report-ttl" env:"REPORT_TTL" env-default:"10m"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Engine struct {
	// DepthLimit above 7 on boards larger than 3x3 makes every request slow;
	// the engine has no time box of its own.
	DepthLimit  int  `yaml:"depth-limit" env:"ENGINE_DEPTH_LIMIT" env-default:"7"`
	Diagnostics bool `yaml:"diagnostics" env:"ENGINE_DIAGNOSTICS" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Engine.DepthLimit < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepthLimit, that.Engine.DepthLimit)
	}

	return nil
}

// GetRedisAddr returns host:port, or an empty string when either part is missing.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
