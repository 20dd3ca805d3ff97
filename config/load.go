package config

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Load decodes the TOML file at path over Default and validates the result
// A file that defines any [[click]] row replaces the whole default table
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	defaults := cfg.Clicks
	cfg.Clicks = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.Wrapf(ErrInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if !md.IsDefined("click") {
		cfg.Clicks = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "config %s", path)
	}
	return cfg, nil
}

// Environment variables applied by ApplyEnv
const (
	EnvThreshold = "DONTPRESS_THRESHOLD"
	EnvCooldown  = "DONTPRESS_COOLDOWN"
	EnvSeed      = "DONTPRESS_SEED"
	EnvMute      = "DONTPRESS_MUTE"
	EnvVolume    = "DONTPRESS_VOLUME"
)

// ApplyEnv overrides fields from DONTPRESS_* variables
// Set but unparsable values are reported rather than silently ignored
func (c *Config) ApplyEnv() error {
	if err := envFloat(EnvThreshold, &c.Game.WinThresholdSeconds); err != nil {
		return err
	}
	if err := envFloat(EnvCooldown, &c.Game.CooldownSeconds); err != nil {
		return err
	}
	if err := envFloat(EnvVolume, &c.Audio.Volume); err != nil {
		return err
	}
	if val := os.Getenv(EnvSeed); val != "" {
		seed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvSeed)
		}
		c.Game.Seed = seed
	}
	if val := os.Getenv(EnvMute); val != "" {
		mute, err := strconv.ParseBool(val)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvMute)
		}
		c.Audio.Mute = mute
	}
	return nil
}

func envFloat(key string, dst *float64) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return errors.Wrapf(err, "%s", key)
	}
	*dst = f
	return nil
}
