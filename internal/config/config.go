// Package config loads the server configuration from a YAML (or JSON) file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/polezero/pkg/publish"
	"gopkg.in/yaml.v3"
)

// Draft store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config is the full server configuration.
type Config struct {
	Addr         string      `yaml:"addr" json:"addr"`
	PublishPath  string      `yaml:"publish_path" json:"publish_path"`
	Param        string      `yaml:"param" json:"param"`
	StrictValues bool        `yaml:"strict_values" json:"strict_values"`
	LogLevel     string      `yaml:"log_level" json:"log_level"`
	Store        StoreConfig `yaml:"store" json:"store"`
}

// StoreConfig selects and configures the draft store.
type StoreConfig struct {
	Driver string      `yaml:"driver" json:"driver"`
	Dir    string      `yaml:"dir" json:"dir"`
	Redis  RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig configures the redis draft store and lock.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
	Lock     bool          `yaml:"lock" json:"lock"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Addr:        ":8080",
		PublishPath: publish.DefaultPath,
		Param:       publish.DefaultParam,
		LogLevel:    "info",
		Store: StoreConfig{
			Driver: DriverMemory,
			Dir:    filepath.Join(".polezero", "drafts"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "polezero:draft:",
				TTL:    time.Hour,
			},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Files ending in .json are parsed as JSON, everything else as YAML.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the driver name.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis:
		return nil
	}
	return fmt.Errorf("unknown store driver %q (want memory, file or redis)", c.Store.Driver)
}

// Publisher returns the publisher described by the configuration.
func (c Config) Publisher() publish.Publisher {
	return publish.Publisher{Path: c.PublishPath, Param: c.Param}
}
