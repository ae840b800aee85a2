package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Player struct {
		ID string `yaml:"id"`
	} `yaml:"player"`
	Quiz struct {
		Level           string   `yaml:"level"`
		Subjects        []string `yaml:"subjects"`
		TTL             string   `yaml:"ttl"`
		SkipAwardsScore *bool    `yaml:"skip_awards_score"`
		TickRate        int      `yaml:"tick_rate"`
	} `yaml:"quiz"`
	Questions struct {
		// Source is one of sqlite, postgres or static.
		Source string `yaml:"source"`
	} `yaml:"questions"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Ledger struct {
		// Backend is one of file, redis or memory.
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Key     string `yaml:"key"`
	} `yaml:"ledger"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"
	cfg.Player.ID = "teste"
	cfg.Quiz.TTL = "10m"
	cfg.Quiz.TickRate = 30
	cfg.Questions.Source = "sqlite"
	cfg.SQLite.Path = "quiz_banco.db"
	cfg.Redis.TTL = "10m"
	cfg.Ledger.Backend = "file"
	cfg.Ledger.Path = "ranking_data.json"
	cfg.Ledger.Key = "ranking"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not
// an error. Variables from a .env file and the environment override the file.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"QUIZ_PLAYER_ID":   &cfg.Player.ID,
		"QUIZ_SQLITE_PATH": &cfg.SQLite.Path,
		"POSTGRES_URL":     &cfg.Postgres.URL,
		"REDIS_ADDR":       &cfg.Redis.Addr,
		"LOG_LEVEL":        &cfg.Log.Level,
	}
	for key, target := range overrides {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			*target = value
		}
	}
}

// SkipAwardsScore reports whether the skip help credits the question's score.
func (c Config) SkipAwardsScore() bool {
	if c.Quiz.SkipAwardsScore == nil {
		return true
	}
	return *c.Quiz.SkipAwardsScore
}

// TickInterval converts the tick rate into a frame interval.
func (c Config) TickInterval() time.Duration {
	rate := c.Quiz.TickRate
	if rate <= 0 {
		rate = 30
	}
	return time.Second / time.Duration(rate)
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
