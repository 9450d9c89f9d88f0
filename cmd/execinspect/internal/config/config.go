package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/blockberries/execution/types"
)

const (
	EnvPrefix = "EXECINSPECT"

	AddrField     = "addr"
	SenderField   = "sender"
	ContractField = "contract"
	DecodeField   = "decode"
)

// Decode modes accepted by DecodeField.
const (
	DecodeJSON   = "json"
	DecodeRaw    = "raw"
	DecodeBase64 = "base64"
	DecodeNone   = "none"
)

// Config holds the settings shared by every subcommand. Values come
// from flags, then EXECINSPECT_* environment variables, then the
// config file.
type Config struct {
	Addr     string          `mapstructure:"addr"`
	Sender   types.AccountID `mapstructure:"sender"`
	Contract types.AccountID `mapstructure:"contract"`
	Decode   string          `mapstructure:"decode"`
}

// Defaults applied before any source is read.
var Defaults = map[string]any{
	AddrField:     "127.0.0.1:8551",
	ContractField: "status.test.near",
	DecodeField:   DecodeJSON,
}

// New returns a viper instance with defaults and the environment
// bound.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range Defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile if set, binds flags and decodes the result.
func Load(v *viper.Viper, cfgFile string, flags *pflag.FlagSet, logger zerolog.Logger) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the decode mode and the account ids that are set.
func (c *Config) Validate() error {
	switch c.Decode {
	case DecodeJSON, DecodeRaw, DecodeBase64, DecodeNone:
	default:
		return fmt.Errorf("invalid %s %q: want json|raw|base64|none", DecodeField, c.Decode)
	}
	if c.Addr == "" {
		return errors.New("empty " + AddrField)
	}
	if c.Sender != "" {
		if err := c.Sender.Validate(); err != nil {
			return fmt.Errorf("%s: %w", SenderField, err)
		}
	}
	if c.Contract != "" {
		if err := c.Contract.Validate(); err != nil {
			return fmt.Errorf("%s: %w", ContractField, err)
		}
	}
	return nil
}
