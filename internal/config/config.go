package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Data     DataConfig     `mapstructure:"data"`
	Network  NetworkConfig  `mapstructure:"network"`
	Gateways GatewayConfig  `mapstructure:"gateways"`
	Security SecurityConfig `mapstructure:"security"`
	Currency CurrencyConfig `mapstructure:"currency"`
	Log      LogConfig      `mapstructure:"log"`
}

// AppConfig names the build for diagnostic exports.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Build   string `mapstructure:"build"`
}

// DataConfig holds on-disk locations.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// NetworkConfig holds the initial provider. Runtime changes live in the db.
type NetworkConfig struct {
	Provider string `mapstructure:"provider"`
	RPCURL   string `mapstructure:"rpc_url"`
}

// GatewayConfig holds content-gateway probe settings.
type GatewayConfig struct {
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	File         string        `mapstructure:"file"`
	Default      string        `mapstructure:"default"`
}

// SecurityConfig describes the host's credential protection.
// Biometry is empty when the device has no biometric sensor.
type SecurityConfig struct {
	PasscodeEnv string `mapstructure:"passcode_env"`
	Biometry    string `mapstructure:"biometry"`
}

// CurrencyConfig holds conversion-rate settings.
type CurrencyConfig struct {
	Code    string `mapstructure:"code"`
	RateURL string `mapstructure:"rate_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	MaxRolls int    `mapstructure:"max_rolls"`
}

// DefaultDataDir is used when data.dir is not configured.
func DefaultDataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "jaskwallet")
}

// Path returns the config file location honouring JASKWALLET_CONFIG.
func Path() string {
	if p := os.Getenv("JASKWALLET_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "jaskwallet", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix JASKWALLET_.
// An explicit path wins over JASKWALLET_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("JASKWALLET_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jaskwallet"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKWALLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Gateways.ProbeTimeout <= 0 {
		c.Gateways.ProbeTimeout = 10 * time.Second
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "JaskWallet")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.build", "1")
	v.SetDefault("data.dir", DefaultDataDir())
	v.SetDefault("network.provider", "mainnet")
	v.SetDefault("network.rpc_url", "")
	v.SetDefault("gateways.probe_timeout", "10s")
	v.SetDefault("gateways.file", "")
	v.SetDefault("gateways.default", "https://ipfs.io/ipfs/")
	v.SetDefault("security.passcode_env", "JASKWALLET_PASSCODE")
	v.SetDefault("security.biometry", "")
	v.SetDefault("currency.code", "usd")
	v.SetDefault("currency.rate_url", "https://api.coingecko.com/api/v3/simple/price")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_rolls", 3)
}

// Save writes the provided config to disk, creating the config directory if needed.
// This is used by the settings screens for non-sensitive preferences.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("app.name", cfg.App.Name)
	v.Set("app.version", cfg.App.Version)
	v.Set("app.build", cfg.App.Build)
	v.Set("data.dir", cfg.Data.Dir)
	v.Set("network.provider", cfg.Network.Provider)
	v.Set("network.rpc_url", cfg.Network.RPCURL)
	v.Set("gateways.probe_timeout", cfg.Gateways.ProbeTimeout.String())
	v.Set("gateways.file", cfg.Gateways.File)
	v.Set("gateways.default", cfg.Gateways.Default)
	v.Set("security.passcode_env", cfg.Security.PasscodeEnv)
	v.Set("security.biometry", cfg.Security.Biometry)
	v.Set("currency.code", cfg.Currency.Code)
	v.Set("currency.rate_url", cfg.Currency.RateURL)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.max_rolls", cfg.Log.MaxRolls)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
