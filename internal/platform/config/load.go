package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables read by Load.
const EnvPrefix = "APP_"

// Option configures Load.
type Option func(*loader)

// WithConfigDir reads base.yaml and the profile file from dir instead of
// ./configs.
func WithConfigDir(dir string) Option {
	return func(l *loader) { l.dir = dir }
}

type loader struct {
	dir string
	k   *koanf.Koanf
}

// Load assembles the configuration for profile from, in increasing
// precedence: built-in defaults, configs/base.yaml, configs/<profile>.yaml
// and APP_* environment variables. The result is validated.
//
// An environment variable names a key by replacing dots with underscores:
// APP_EVENTS_AZQUEUE_QUEUE_NAME sets events.azqueue.queue_name. Keys are
// matched against the ones already known, so underscores inside a key name
// survive.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	l := &loader{dir: "configs", k: koanf.New(".")}
	for _, opt := range opts {
		opt(l)
	}

	layers := []struct {
		name     string
		provider koanf.Provider
		parser   koanf.Parser
	}{
		{"defaults", confmap.Provider(defaults(), "."), nil},
		{"base config", file.Provider(filepath.Join(l.dir, "base.yaml")), yaml.Parser()},
		{"profile " + profile, file.Provider(filepath.Join(l.dir, profile+".yaml")), yaml.Parser()},
	}
	for _, layer := range layers {
		if err := l.k.Load(layer.provider, layer.parser); err != nil {
			return nil, fmt.Errorf("loading %s: %w", layer.name, err)
		}
	}

	// The env layer needs the keys of the layers below it.
	if err := l.k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyMapper(l.k.Keys()),
	}), nil); err != nil {
		return nil, fmt.Errorf("loading %s* environment: %w", EnvPrefix, err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", profile, err)
	}
	return &cfg, nil
}

// envKeyMapper maps APP_SERVER_READ_TIMEOUT to "server.read_timeout" when
// that key is known, and to "server.read.timeout" otherwise.
func envKeyMapper(known []string) func(string, string) (string, any) {
	byEnv := make(map[string]string, len(known))
	for _, key := range known {
		byEnv[strings.ReplaceAll(key, ".", "_")] = key
	}
	return func(name, value string) (string, any) {
		name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if key, ok := byEnv[name]; ok {
			return key, value
		}
		return strings.ReplaceAll(name, "_", "."), value
	}
}

// validateProfile accepts a plain file name: no separators, no "..".
func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("config profile is empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("config profile %q is not a plain name", profile)
	default:
		return nil
	}
}
