package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dontpress.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Clicks, 7)
	assert.Equal(t, 30*time.Second, cfg.WinThreshold())
	assert.Equal(t, 200*time.Millisecond, cfg.Cooldown())
	assert.Equal(t, 22*time.Second, cfg.DelayedEffectDelay())
	assert.Equal(t, 500*time.Millisecond, cfg.Clicks[2].Shake())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesScalarsAndKeepsDefaultClicks(t *testing.T) {
	path := writeConfig(t, `
[game]
win_threshold_seconds = 45.0
seed = 7
play_audio_once = true
restore_light_on_game_over = true

[fov]
repeat = 3

[keys]
x = "quit"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 45.0, cfg.Game.WinThresholdSeconds)
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.True(t, cfg.Game.PlayAudioOnce)
	assert.True(t, cfg.Game.RestoreLightOnGameOver)
	assert.Equal(t, 3, cfg.FOV.Repeat)
	assert.Equal(t, 90.0, cfg.FOV.High, "untouched keys keep defaults")
	assert.Equal(t, map[string]string{"x": "quit"}, cfg.Keys)
	assert.Equal(t, DefaultClicks(), cfg.Clicks)
}

func TestLoadClickTableReplacesDefaults(t *testing.T) {
	path := writeConfig(t, `
[[click]]
audio = "click"
warning = "no"

[click.fog]
enabled = true
mode = "exponential_squared"
color = "#112233"
density = 0.2

[[click]]
color_cycle = "start"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Clicks, 2)
	assert.Equal(t, "no", cfg.Clicks[0].Warning)
	require.NotNil(t, cfg.Clicks[0].Fog)
	assert.Equal(t, 0.2, cfg.Clicks[0].Fog.Density)
	assert.Nil(t, cfg.Clicks[0].Light)
	assert.Equal(t, "start", cfg.Clicks[1].ColorCycle)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[game]
win_treshold = 10.0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "game.win_treshold")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[game]
win_threshold_seconds = 0.0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "win_threshold_seconds")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidateCases(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative cooldown", func(c *Config) { c.Game.CooldownSeconds = -1 }, "cooldown_seconds"},
		{"inverted fov", func(c *Config) { c.FOV.Low, c.FOV.High = 90, 60 }, "fov.low"},
		{"zero fov leg", func(c *Config) { c.FOV.UpSeconds = 0 }, "up_seconds"},
		{"zero repeat", func(c *Config) { c.FOV.Repeat = 0 }, "fov.repeat"},
		{"shake bounds", func(c *Config) { c.Shake.MaxMagnitude = 0.01 }, "shake magnitudes"},
		{"shake interval", func(c *Config) { c.Shake.IntervalSeconds = 0 }, "shake.interval_seconds"},
		{"cycle interval", func(c *Config) { c.ColorCycle.IntervalSeconds = 0 }, "color_cycle.interval_seconds"},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }, "audio.volume"},
		{"bad color", func(c *Config) { c.Clicks[1].Light.Color = "red" }, "click[2]"},
		{"bad fog mode", func(c *Config) { c.Clicks[0].Fog.Mode = "thick" }, "fog.mode"},
		{"bad cycle", func(c *Config) { c.Clicks[4].ColorCycle = "spin" }, "color_cycle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvThreshold, "12.5")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvMute, "true")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 12.5, cfg.Game.WinThresholdSeconds)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.True(t, cfg.Audio.Mute)
	assert.Equal(t, 0.2, cfg.Game.CooldownSeconds, "unset variables leave defaults")
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvCooldown, "soon")
	cfg := Default()
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvCooldown)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.R)
	_, err = ParseColor("ff0000")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
