// Package config loads navgrid settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3/log"
	"gopkg.in/yaml.v3"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/navmesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/pathfind"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment overrides, applied after the file.
const (
	EnvPort         = "NAVGRID_PORT"
	EnvDBPath       = "NAVGRID_DB_PATH"
	EnvLogLevel     = "NAVGRID_LOG_LEVEL"
	EnvReadTimeout  = "NAVGRID_READ_TIMEOUT"
	EnvWriteTimeout = "NAVGRID_WRITE_TIMEOUT"
)

// Config is the full runtime configuration of navgrid.
type Config struct {
	Server    ServerConfig            `yaml:"server"`
	Storage   StorageConfig           `yaml:"storage"`
	Log       LogConfig               `yaml:"log"`
	Navmesh   NavmeshConfig           `yaml:"navmesh"`
	Steepness pathfind.SteepnessRange `yaml:"steepness"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`  // seconds
	WriteTimeout int    `yaml:"writeTimeout"` // seconds
	BodyLimit    int    `yaml:"bodyLimit"`    // bytes; OBJ uploads
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

// LogConfig sets the log level (trace, debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// NavmeshConfig holds the rasterization thresholds.
type NavmeshConfig struct {
	Resolution       float64 `yaml:"resolution"`
	LowIgnoreHeight  float64 `yaml:"lowIgnoreHeight"`
	HighIgnoreHeight float64 `yaml:"highIgnoreHeight"`
	NormalCutoff     float64 `yaml:"normalCutoff"`
	MaxCells         int     `yaml:"maxCells"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  10,
			WriteTimeout: 10,
			BodyLimit:    64 << 20,
		},
		Storage: StorageConfig{DBPath: "data/db/navgrid.db"},
		Log:     LogConfig{Level: "info"},
		Navmesh: NavmeshConfig{
			Resolution:       navmesh.DefaultResolution,
			LowIgnoreHeight:  navmesh.DefaultLowIgnoreHeight,
			HighIgnoreHeight: navmesh.DefaultHighIgnoreHeight,
			NormalCutoff:     navmesh.DefaultNormalCutoff,
			MaxCells:         navmesh.DefaultMaxCells,
		},
		Steepness: pathfind.DefaultSteepnessRange(),
	}
}

// Load reads path over the defaults (an empty path skips the file), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv(EnvPort, c.Server.Port)
	c.Server.ReadTimeout = getEnvAsInt(EnvReadTimeout, c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsInt(EnvWriteTimeout, c.Server.WriteTimeout)
	c.Storage.DBPath = getEnv(EnvDBPath, c.Storage.DBPath)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
}

// Validate checks every field that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: server.port is empty", ErrInvalidConfig)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("%w: storage.dbPath is empty", ErrInvalidConfig)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if err := c.Steepness.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := navmesh.ValidateOptions(c.NavmeshOptions()...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// NavmeshOptions converts the thresholds to Build options.
func (c *Config) NavmeshOptions() []navmesh.Option {
	return []navmesh.Option{
		navmesh.WithResolution(c.Navmesh.Resolution),
		navmesh.WithLowIgnoreHeight(c.Navmesh.LowIgnoreHeight),
		navmesh.WithHighIgnoreHeight(c.Navmesh.HighIgnoreHeight),
		navmesh.WithNormalCutoff(c.Navmesh.NormalCutoff),
		navmesh.WithMaxCells(c.Navmesh.MaxCells),
	}
}

// LogLevel maps Log.Level to a fiber log level.
func (c *Config) LogLevel() (log.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
