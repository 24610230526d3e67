package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Microblog struct {
		BaseURL string        `env:"MICROBLOG_BASE_URL" env-default:"http://localhost:8000"`
		Timeout time.Duration `env:"MICROBLOG_TIMEOUT" env-default:"15s"`
	}
	Session struct {
		Path string `env:"SESSION_PATH" env-default:"./microblog-session"`
	}
	Telegram struct {
		Owner int64  `env:"TELEGRAM_OWNER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
	Feed struct {
		RefreshMinutes int `env:"FEED_REFRESH_MINUTES" env-default:"5"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
