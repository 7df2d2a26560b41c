// Package config loads process configuration from defaults, an optional YAML
// file and LEDGER_* environment variables, in that order.
package config

import (
	"fmt"
	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"go-itc-ledger"
	"go-itc-ledger/currency"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment variable read. A double underscore
// separates nesting levels: LEDGER_SERVER__ADDR sets server.addr.
const EnvPrefix = "LEDGER_"

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logger     LoggerConfig     `koanf:"logger"`
	Currencies []CurrencyConfig `koanf:"currencies" validate:"dive"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// CurrencyConfig defines one currency besides ITC
type CurrencyConfig struct {
	Code   string  `koanf:"code" validate:"required"`
	Symbol string  `koanf:"symbol"`
	Ratio  float64 `koanf:"ratio" validate:"gt=0"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":             ":8080",
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.shutdown_timeout": "30s",
		"logger.level":            "info",
		"currencies": []interface{}{
			map[string]interface{}{"code": "USD", "symbol": "$", "ratio": 1.0},
			map[string]interface{}{"code": "INR", "symbol": "₹", "ratio": 0.013},
		},
	}
}

// LoadConfig builds a validated Config. path names an optional YAML file;
// an empty path skips it.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file [%v]: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Registry returns a currency registry holding ITC and the configured currencies
func (c *Config) Registry() (*currency.Registry, error) {
	defs := make([]currency.Currency, 0, len(c.Currencies))
	for _, cc := range c.Currencies {
		def, err := currency.New(ledger.Code(cc.Code), cc.Symbol, ledger.Ratio(cc.Ratio))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return currency.NewRegistry(defs...)
}
