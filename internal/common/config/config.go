package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Platform struct {
		BotToken string        `env:"BOT_TOKEN,required"`
		APIBase  string        `env:"PLATFORM_API_BASE" envDefault:"https://discord.com/api/v10"`
		Timeout  time.Duration `env:"PLATFORM_API_TIMEOUT" envDefault:"10s"`
	}

	Session struct {
		CookieName string `env:"SESSION_COOKIE" envDefault:"session"`
	}

	Directory struct {
		CacheTTL time.Duration `env:"DIRECTORY_CACHE_TTL" envDefault:"5m"`
	}
}

func Load() *Config {
	// A missing .env file is fine: in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
