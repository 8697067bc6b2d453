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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CONCURSO_CONFIG is set
//  3. env (prefix CONCURSO_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CONCURSO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: CONCURSO_ADDR, CONCURSO_STORE_PATH, ...
	// Map env keys like CONCURSO_STORE_PATH -> store_path (flat keys).
	envProvider := env.Provider("CONCURSO_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "concurso_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	for role, weight := range cfg.RoleWeights {
		if weight < 0 {
			return nil, fmt.Errorf("%w: negative weight %v for role %q", ErrInvalidConfig, weight, role)
		}
	}
	return &cfg, nil
}
