// Package config loads circuit breaker tuning profiles from a file or
// the environment, for services that prefer declarative tuning over
// hardcoded options.
//
// Expected layout (YAML shown; any viper-supported format works):
//
//	default:
//	  failure_threshold: 5
//	  recovery_timeout: 30s
//	  success_threshold: 2
//	  call_timeout: 10s
//	circuits:
//	  orders-db:
//	    failure_threshold: 5
//	    recovery_timeout: 30s
//	    success_threshold: 3
//	    call_timeout: 10s
package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/quantrail/breaker"
)

// Profile is the file representation of breaker.Profile.
type Profile struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	RecoveryTimeout  time.Duration `mapstructure:"recovery_timeout"`
	SuccessThreshold int           `mapstructure:"success_threshold"`
	CallTimeout      time.Duration `mapstructure:"call_timeout"`
}

// Config holds a default profile plus per-circuit overrides.
type Config struct {
	Default  Profile            `mapstructure:"default"`
	Circuits map[string]Profile `mapstructure:"circuits"`
}

// Load reads and validates a Config. With an empty path it looks for
// breakers.yaml in the working directory; a missing file is not an
// error and yields the defaults. Environment variables with the
// BREAKER_ prefix override file values (BREAKER_DEFAULT_CALL_TIMEOUT=5s).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("default.failure_threshold", breaker.DefaultFailureThreshold)
	v.SetDefault("default.recovery_timeout", breaker.DefaultRecoveryTimeout)
	v.SetDefault("default.success_threshold", breaker.DefaultSuccessThreshold)
	v.SetDefault("default.call_timeout", breaker.DefaultCallTimeout)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("breakers")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("breaker")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the default profile and every per-circuit override.
func (c *Config) Validate() error {
	if err := c.Default.Validate(); err != nil {
		return fmt.Errorf("default: %w", err)
	}
	for name, p := range c.Circuits {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("circuit %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks a single profile. CallTimeout may be zero, which
// disables the async call timeout.
func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FailureThreshold, validation.Required, validation.Min(1)),
		validation.Field(&p.RecoveryTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&p.SuccessThreshold, validation.Required, validation.Min(1)),
		validation.Field(&p.CallTimeout, validation.Min(time.Duration(0))),
	)
}

// Profile returns the tuning profile for name: the per-circuit override
// if present, the default otherwise.
func (c *Config) Profile(name string) breaker.Profile {
	p := c.Default
	if override, ok := c.Circuits[name]; ok {
		p = override
	}
	return breaker.Profile{
		FailureThreshold: p.FailureThreshold,
		RecoveryTimeout:  p.RecoveryTimeout,
		SuccessThreshold: p.SuccessThreshold,
		CallTimeout:      p.CallTimeout,
	}
}

// Options returns the breaker options for name, ready to pass to
// breaker.New or Registry.Get.
func (c *Config) Options(name string) []breaker.Option {
	return []breaker.Option{breaker.WithProfile(c.Profile(name))}
}
