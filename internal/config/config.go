package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines deckgen configuration.
type Config struct {
	Deck   DeckConfig   `yaml:"deck"`
	Roster RosterConfig `yaml:"roster"`
	Assets AssetsConfig `yaml:"assets"`
	Strip  StripConfig  `yaml:"strip"`
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
}

type DeckConfig struct {
	Path         string `yaml:"path"`
	BackupSuffix string `yaml:"backup_suffix"`
}

type RosterConfig struct {
	Path string `yaml:"path"`
}

type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// StripConfig tunes detection of leftover record content on cloned slides.
type StripConfig struct {
	DigitThreshold int      `yaml:"digit_threshold"`
	LabelTokens    []string `yaml:"label_tokens"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Deck: DeckConfig{
			Path:         "deck.json",
			BackupSuffix: ".backup",
		},
		Roster: RosterConfig{
			Path: "players.json",
		},
		Assets: AssetsConfig{
			Dir: "photos",
		},
		Strip: StripConfig{
			DigitThreshold: 10,
			LabelTokens:    []string{"name:", "age:", "category:", "ph:", "phone:"},
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "deckgen.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a .env file in the working directory, an
// optional YAML file, and environment variables, in that order.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("DECKGEN_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DECKGEN_DECK_PATH"); v != "" {
		cfg.Deck.Path = v
	}
	if v := os.Getenv("DECKGEN_BACKUP_SUFFIX"); v != "" {
		cfg.Deck.BackupSuffix = v
	}
	if v := os.Getenv("DECKGEN_ROSTER_PATH"); v != "" {
		cfg.Roster.Path = v
	}
	if v := os.Getenv("DECKGEN_ASSETS_DIR"); v != "" {
		cfg.Assets.Dir = v
	}
	if v := os.Getenv("DECKGEN_DIGIT_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid DECKGEN_DIGIT_THRESHOLD: %q", v)
		}
		cfg.Strip.DigitThreshold = n
	}
	if v := os.Getenv("DECKGEN_LABEL_TOKENS"); v != "" {
		cfg.Strip.LabelTokens = strings.Split(v, ",")
	}
	if v := os.Getenv("DECKGEN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("DECKGEN_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DECKGEN_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("DECKGEN_DB_PATH"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("DECKGEN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if cfg.Strip.DigitThreshold < 0 {
		return fmt.Errorf("parse config file: strip.digit_threshold must not be negative")
	}
	return nil
}
