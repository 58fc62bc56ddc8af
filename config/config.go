// Package config handles the global CLI configuration file.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var global Config

// Config is the CLI configuration.
type Config struct {
	// Network is the name of the default network.
	Network string `mapstructure:"network" validate:"required"`
	// Networks maps network names to their RPC endpoints.
	Networks map[string]*Network `mapstructure:"networks" validate:"required,min=1,dive,required"`

	Wallet      Wallet      `mapstructure:"wallet"`
	SafeStaking SafeStaking `mapstructure:"safe_staking"`
}

// Network is a single chain endpoint entry.
type Network struct {
	// Endpoint is the websocket RPC endpoint.
	Endpoint string `mapstructure:"endpoint" validate:"required,ws_endpoint"`
}

// Wallet selects the default on-disk wallet.
type Wallet struct {
	Name   string `mapstructure:"name" validate:"required"`
	Path   string `mapstructure:"path" validate:"required"`
	Hotkey string `mapstructure:"hotkey" validate:"required"`
}

// SafeStaking holds the default price-tolerance parameters for safe stake
// and unstake operations.
type SafeStaking struct {
	// RateTolerance is the allowed relative price movement, e.g. 0.005.
	RateTolerance float64 `mapstructure:"rate_tolerance" validate:"gte=0,lt=1"`
	// AllowPartial permits partial fills once the tolerance is hit.
	AllowPartial bool `mapstructure:"allow_partial"`
}

// Global returns the global configuration structure.
func Global() *Config {
	return &global
}

// DefaultDirectory returns the CLI config directory.
func DefaultDirectory() string {
	return filepath.Join(xdg.ConfigHome, "btcli")
}

// ResetDefaults resets the global configuration to defaults.
func ResetDefaults() {
	global = Default
}

// Load loads the global configuration from the given viper instance.
func Load(v *viper.Viper) error {
	setDefaults(v)
	if err := v.Unmarshal(&global); err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}
	return nil
}

// Save persists the configuration stored in the given viper instance.
func Save(v *viper.Viper) error {
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// Validate performs config validation.
func (cfg *Config) Validate() error {
	if err := newValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if ok := isValidationErrors(err, &verrs); ok && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid configuration: field %s failed %s validation", f.Namespace(), f.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, ok := cfg.Networks[cfg.Network]; !ok {
		return fmt.Errorf("invalid configuration: default network %q is not configured", cfg.Network)
	}
	return nil
}

// EndpointFor returns the RPC endpoint for the named network.
func (cfg *Config) EndpointFor(name string) (string, error) {
	net, ok := cfg.Networks[name]
	if !ok {
		return "", fmt.Errorf("network %q does not exist", name)
	}
	return net.Endpoint, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ws_endpoint", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.HasPrefix(s, "ws://") || strings.HasPrefix(s, "wss://")
	})
	return v
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("network", Default.Network)
	for name, net := range Default.Networks {
		v.SetDefault("networks."+name+".endpoint", net.Endpoint)
	}
	v.SetDefault("wallet.name", Default.Wallet.Name)
	v.SetDefault("wallet.path", Default.Wallet.Path)
	v.SetDefault("wallet.hotkey", Default.Wallet.Hotkey)
	v.SetDefault("safe_staking.rate_tolerance", Default.SafeStaking.RateTolerance)
	v.SetDefault("safe_staking.allow_partial", Default.SafeStaking.AllowPartial)
}
