package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FUSION_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FUSION_CONFIG is set
//  3. env (prefix FUSION_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// FUSION_USERS_API_URL -> users_api_url (flat keys, underscores preserved).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	// FUSION_VACANCIES is one comma separated string; file lists are kept as is.
	if raw, ok := k.Get("vacancies").(string); ok {
		if err := k.Set("vacancies", strings.Split(raw, ",")); err != nil {
			return nil, fmt.Errorf("%w: vacancies: %w", ErrLoadConfig, err)
		}
	}

	cfg := *base
	if k.Exists("vacancies") {
		// replace the default list instead of merging into it
		cfg.Vacancies = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.UsersAPIURL) == "":
		return fmt.Errorf("%w: users_api_url must not be empty", ErrInvalidConfig)
	case c.UsersAPITimeoutMS < 0:
		return fmt.Errorf("%w: users_api_timeout_ms must not be negative", ErrInvalidConfig)
	}

	vacancies := make([]string, 0, len(c.Vacancies))
	for _, v := range c.Vacancies {
		if v = strings.TrimSpace(v); v != "" {
			vacancies = append(vacancies, v)
		}
	}
	if len(vacancies) == 0 {
		return fmt.Errorf("%w: at least one vacancy is required", ErrInvalidConfig)
	}
	c.Vacancies = vacancies
	return nil
}
