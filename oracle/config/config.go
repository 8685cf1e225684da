package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	tmlog "github.com/tendermint/tendermint/libs/log"

	"github.com/GPTx-global/guru-dataoracle/oracle/log"
	"github.com/GPTx-global/guru-dataoracle/server"
)

const (
	DefaultHomeDirName = ".oracled"
	ConfigFileName     = "config.toml"
	GenesisFileName    = "genesis.json"
	EnvFileName        = ".env"

	// EnvPrefix prefixes environment overrides, e.g. ORACLED_API_ADDRESS.
	EnvPrefix = "ORACLED"

	BackendGoLevelDB = "goleveldb"
	BackendMemDB     = "memdb"

	DefaultChainID = "guru-dataoracle-1"
)

// Config is the daemon configuration read from <home>/config.toml.
type Config struct {
	Home string `mapstructure:"-" toml:"-"`

	Chain     ChainConfig     `mapstructure:"chain" toml:"chain"`
	Store     StoreConfig     `mapstructure:"store" toml:"store"`
	API       server.Config   `mapstructure:"api" toml:"api"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" toml:"telemetry"`
	Health    HealthConfig    `mapstructure:"health" toml:"health"`
	Feeder    FeederConfig    `mapstructure:"feeder" toml:"feeder"`
}

type ChainConfig struct {
	ID string `mapstructure:"id" toml:"id"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend" toml:"backend"`
	// Dir is relative to the home directory unless absolute.
	Dir     string `mapstructure:"dir" toml:"dir"`
	Pruning string `mapstructure:"pruning" toml:"pruning"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	// File redirects the log to <home>/logs.
	File bool `mapstructure:"file" toml:"file"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
	// RetentionTime is the prometheus retention in seconds.
	RetentionTime int64 `mapstructure:"retention_time" toml:"retention_time"`
}

type HealthConfig struct {
	Interval time.Duration `mapstructure:"interval" toml:"interval"`
}

// FeederConfig drives the data feeder that submits values for oracles run by
// Provider.
type FeederConfig struct {
	Enabled  bool        `mapstructure:"enabled" toml:"enabled"`
	Provider string      `mapstructure:"provider" toml:"provider"`
	Workers  int         `mapstructure:"workers" toml:"workers"`
	Jobs     []JobConfig `mapstructure:"jobs" toml:"jobs"`
}

// JobConfig fetches URL every Interval and submits the value found at the
// gjson Path for OracleID.
type JobConfig struct {
	OracleID uint64        `mapstructure:"oracle_id" toml:"oracle_id"`
	URL      string        `mapstructure:"url" toml:"url"`
	Path     string        `mapstructure:"path" toml:"path"`
	Interval time.Duration `mapstructure:"interval" toml:"interval"`
}

// DefaultHome returns $HOME/.oracled.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHomeDirName
	}
	return filepath.Join(home, DefaultHomeDirName)
}

func DefaultConfig() Config {
	return Config{
		Chain: ChainConfig{ID: DefaultChainID},
		Store: StoreConfig{
			Backend: BackendGoLevelDB,
			Dir:     "data",
			Pruning: "default",
		},
		API: server.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: log.FormatPlain,
		},
		Telemetry: TelemetryConfig{
			Enabled:       false,
			RetentionTime: 60,
		},
		Health: HealthConfig{Interval: 30 * time.Second},
		Feeder: FeederConfig{
			Enabled: false,
			Workers: 4,
			Jobs:    []JobConfig{},
		},
	}
}

func (c Config) Validate() error {
	if c.Chain.ID == "" {
		return fmt.Errorf("chain id is required")
	}

	switch c.Store.Backend {
	case BackendGoLevelDB, BackendMemDB:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == BackendGoLevelDB && c.Store.Dir == "" {
		return fmt.Errorf("store dir is required for %s", BackendGoLevelDB)
	}

	if err := c.API.Validate(); err != nil {
		return err
	}

	if c.Log.Format != log.FormatPlain && c.Log.Format != log.FormatJSON {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := tmlog.AllowLevel(c.Log.Level); err != nil {
		return err
	}

	if c.Telemetry.Enabled && c.Telemetry.RetentionTime <= 0 {
		return fmt.Errorf("telemetry retention time must be positive")
	}

	if c.Health.Interval <= 0 {
		return fmt.Errorf("health interval must be positive")
	}

	return c.Feeder.Validate()
}

func (c FeederConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if _, err := sdk.AccAddressFromBech32(c.Provider); err != nil {
		return fmt.Errorf("invalid feeder provider: %w", err)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("feeder workers must be positive")
	}

	seen := make(map[uint64]struct{}, len(c.Jobs))
	for i, job := range c.Jobs {
		if job.OracleID == 0 {
			return fmt.Errorf("feeder job %d: oracle id is required", i)
		}
		if _, ok := seen[job.OracleID]; ok {
			return fmt.Errorf("feeder job %d: duplicate oracle id %d", i, job.OracleID)
		}
		seen[job.OracleID] = struct{}{}

		u, err := url.Parse(job.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("feeder job %d: invalid url %q", i, job.URL)
		}
		if job.Path == "" {
			return fmt.Errorf("feeder job %d: path is required", i)
		}
		if job.Interval < time.Second {
			return fmt.Errorf("feeder job %d: interval must be at least 1s", i)
		}
	}
	return nil
}

func (c Config) ConfigFile() string {
	return filepath.Join(c.Home, ConfigFileName)
}

func (c Config) GenesisFile() string {
	return filepath.Join(c.Home, GenesisFileName)
}

// DBDir resolves the store directory against the home directory.
func (c Config) DBDir() string {
	if filepath.IsAbs(c.Store.Dir) {
		return c.Store.Dir
	}
	return filepath.Join(c.Home, c.Store.Dir)
}

// Load reads <home>/config.toml, writing the defaults first when the file does
// not exist. A .env file in home is loaded before ORACLED_ environment
// overrides are applied.
func Load(home string) (*Config, error) {
	if home == "" {
		home = DefaultHome()
	}
	path := filepath.Join(home, ConfigFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := WriteConfigFile(path, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		log.Infof("Created default config at %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	envFile := filepath.Join(home, EnvFileName)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Home = home

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// WriteConfigFile writes cfg as TOML to path, creating parent directories.
func WriteConfigFile(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := cfg.MarshalTOML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MarshalTOML encodes the config with durations in their string form.
func (c Config) MarshalTOML() ([]byte, error) {
	jobs := make([]map[string]interface{}, 0, len(c.Feeder.Jobs))
	for _, job := range c.Feeder.Jobs {
		jobs = append(jobs, map[string]interface{}{
			"oracle_id": job.OracleID,
			"url":       job.URL,
			"path":      job.Path,
			"interval":  job.Interval.String(),
		})
	}

	doc := map[string]interface{}{
		"chain": map[string]interface{}{
			"id": c.Chain.ID,
		},
		"store": map[string]interface{}{
			"backend": c.Store.Backend,
			"dir":     c.Store.Dir,
			"pruning": c.Store.Pruning,
		},
		"api": map[string]interface{}{
			"address":              c.API.Address,
			"max_open_connections": c.API.MaxOpenConnections,
			"cors_allowed_origins": c.API.CORSAllowedOrigins,
			"shutdown_timeout":     c.API.ShutdownTimeout.String(),
		},
		"log": map[string]interface{}{
			"level":  c.Log.Level,
			"format": c.Log.Format,
			"file":   c.Log.File,
		},
		"telemetry": map[string]interface{}{
			"enabled":        c.Telemetry.Enabled,
			"retention_time": c.Telemetry.RetentionTime,
		},
		"health": map[string]interface{}{
			"interval": c.Health.Interval.String(),
		},
		"feeder": map[string]interface{}{
			"enabled":  c.Feeder.Enabled,
			"provider": c.Feeder.Provider,
			"workers":  c.Feeder.Workers,
			"jobs":     jobs,
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return data, nil
}

// Print logs the effective configuration.
func (c Config) Print() {
	log.Infof("%-15s: %s", "Home", c.Home)
	log.Infof("%-15s: %s", "Chain ID", c.Chain.ID)
	log.Infof("%-15s: %s (%s)", "Store", c.Store.Backend, c.DBDir())
	log.Infof("%-15s: %s", "API Address", c.API.Address)
	log.Infof("%-15s: %s/%s", "Log", c.Log.Level, c.Log.Format)
	log.Infof("%-15s: %t", "Telemetry", c.Telemetry.Enabled)
	log.Infof("%-15s: %t (%d jobs)", "Feeder", c.Feeder.Enabled, len(c.Feeder.Jobs))
}
