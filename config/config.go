package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. INVENTORY_WEB_PORT
const EnvPrefix = "INVENTORY_"

// DefaultPassword is used when auth.password_hash is left empty
const DefaultPassword = "inventory"

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
	SecureCookie  bool   `yaml:"secure_cookie"`
}

type AuthConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"` // bcrypt hash, see `inventoryd hash-password`
}

type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type InventoryConfig struct {
	SeedDefaults bool   `yaml:"seed_defaults"`
	SeedFile     string `yaml:"seed_file"`
}

type SchedulerConfig struct {
	Enabled             bool   `yaml:"enabled"`
	StatsInterval       string `yaml:"stats_interval"`
	OprLogCapacity      int    `yaml:"oprlog_capacity"`
	OprLogRetentionDays int    `yaml:"oprlog_retention_days"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system"`
	Web       WebConfig       `yaml:"web"`
	Auth      AuthConfig      `yaml:"auth"`
	Logger    LogConfig       `yaml:"logger"`
	Inventory InventoryConfig `yaml:"inventory"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// GetLogDir returns the directory holding log files
func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

// DefaultAppConfig returns the built-in configuration
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "inventory",
			Location: "UTC",
			Workdir:  "/var/inventory",
			Debug:    false,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 1880,
		},
		Auth: AuthConfig{
			Username: "admin",
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "",
		},
		Inventory: InventoryConfig{
			SeedDefaults: true,
		},
		Scheduler: SchedulerConfig{
			Enabled:             true,
			StatsInterval:       "@every 30s",
			OprLogCapacity:      1000,
			OprLogRetentionDays: 30,
		},
	}
}

// LoadConfig reads the YAML file at path (when it exists) over the defaults,
// then applies INVENTORY_* environment overrides. An empty logger.filename
// defaults to inventory.log under the workdir log directory.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		case os.IsNotExist(err):
		default:
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	if err := ApplyEnv(cfg, os.Environ()); err != nil {
		return nil, err
	}
	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.GetLogDir(), "inventory.log")
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from KEY=VALUE pairs. INVENTORY_WEB_PORT=8080 sets
// web.port; the remainder after the section name is the lower-cased yaml key.
func ApplyEnv(cfg *AppConfig, environ []string) error {
	overrides := map[string]interface{}{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		section, name, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_")
		if !ok || section == "" || name == "" {
			continue
		}
		sec, _ := overrides[section].(map[string]interface{})
		if sec == nil {
			sec = map[string]interface{}{}
			overrides[section] = sec
		}
		sec[name] = value
	}
	if len(overrides) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return errors.Wrap(err, "env decoder")
	}
	if err := decoder.Decode(overrides); err != nil {
		return errors.Wrap(err, "apply env overrides")
	}
	return nil
}
