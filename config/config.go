// Package config holds every tunable of a play session
// Values are immutable once a session is constructed
package config

import (
	"time"

	"github.com/lixenwraith/dontpress/parameter"
)

// Config is the root configuration, decoded from TOML over Default
type Config struct {
	Game       GameConfig        `toml:"game"`
	FOV        FOVConfig         `toml:"fov"`
	Shake      ShakeConfig       `toml:"shake"`
	ColorCycle ColorCycleConfig  `toml:"color_cycle"`
	Overload   OverloadConfig    `toml:"overload"`
	Audio      AudioConfig       `toml:"audio"`
	Keys       map[string]string `toml:"keys"`
	Clicks     []ClickConfig     `toml:"click"`
}

type GameConfig struct {
	WinThresholdSeconds       float64 `toml:"win_threshold_seconds"`
	CooldownSeconds           float64 `toml:"cooldown_seconds"`
	PressTravelDistance       float64 `toml:"press_travel_distance"`
	DelayedEffectDelaySeconds float64 `toml:"delayed_effect_delay_seconds"`
	DelayedEffectClip         string  `toml:"delayed_effect_clip"`
	WarningClearDelaySeconds  float64 `toml:"warning_clear_delay_seconds"`
	// Seed for effect randomness; 0 picks one from the clock
	Seed int64 `toml:"seed"`

	PlayAudioOnce          bool `toml:"play_audio_once"`
	RestoreLightOnGameOver bool `toml:"restore_light_on_game_over"`
}

// FOVConfig describes the camera FOV ping-pong pulse
type FOVConfig struct {
	Base        float64 `toml:"base"`
	Low         float64 `toml:"low"`
	High        float64 `toml:"high"`
	UpSeconds   float64 `toml:"up_seconds"`
	DownSeconds float64 `toml:"down_seconds"`
	Repeat      int     `toml:"repeat"`
}

type ShakeConfig struct {
	MinMagnitude    float64 `toml:"min_magnitude"`
	MaxMagnitude    float64 `toml:"max_magnitude"`
	IntervalSeconds float64 `toml:"interval_seconds"`
}

type ColorCycleConfig struct {
	IntervalSeconds float64 `toml:"interval_seconds"`
}

// OverloadConfig bounds the randomized descriptor used past the click table
type OverloadConfig struct {
	IntensityMin  float64 `toml:"intensity_min"`
	IntensityMax  float64 `toml:"intensity_max"`
	IntensityStep float64 `toml:"intensity_step"`
	DensityMin    float64 `toml:"density_min"`
	DensityMax    float64 `toml:"density_max"`
	ShakeSeconds  float64 `toml:"shake_seconds"`
	Clip          string  `toml:"clip"`
}

type AudioConfig struct {
	Mute bool `toml:"mute"`
	// Volume in [0,1]
	Volume float64 `toml:"volume"`
}

// ClickConfig is one row of the click table, addressed by position (first row = first press)
// Unset fields leave the corresponding port untouched
type ClickConfig struct {
	Light        *LightConfig `toml:"light"`
	Fog          *FogConfig   `toml:"fog"`
	Particles    *bool        `toml:"particles"`
	Audio        string       `toml:"audio"`
	StopAudio    string       `toml:"stop_audio"`
	Ambient      string       `toml:"ambient"`
	Warning      string       `toml:"warning"`
	ShakeSeconds float64      `toml:"shake_seconds"`
	// ColorCycle is "", "start" or "stop"
	ColorCycle string `toml:"color_cycle"`
	FOVPulse   bool   `toml:"fov_pulse"`
}

type LightConfig struct {
	Enabled   bool    `toml:"enabled"`
	Color     string  `toml:"color"`
	Intensity float64 `toml:"intensity"`
}

type FogConfig struct {
	Enabled     bool    `toml:"enabled"`
	Mode        string  `toml:"mode"`
	Color       string  `toml:"color"`
	Density     float64 `toml:"density"`
	LinearStart float64 `toml:"linear_start"`
	LinearEnd   float64 `toml:"linear_end"`
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (c *Config) WinThreshold() time.Duration       { return seconds(c.Game.WinThresholdSeconds) }
func (c *Config) Cooldown() time.Duration           { return seconds(c.Game.CooldownSeconds) }
func (c *Config) DelayedEffectDelay() time.Duration { return seconds(c.Game.DelayedEffectDelaySeconds) }
func (c *Config) WarningClearDelay() time.Duration  { return seconds(c.Game.WarningClearDelaySeconds) }
func (c *Config) FOVUp() time.Duration              { return seconds(c.FOV.UpSeconds) }
func (c *Config) FOVDown() time.Duration            { return seconds(c.FOV.DownSeconds) }
func (c *Config) ShakeInterval() time.Duration      { return seconds(c.Shake.IntervalSeconds) }
func (c *Config) ColorCycleInterval() time.Duration { return seconds(c.ColorCycle.IntervalSeconds) }
func (c *Config) OverloadShake() time.Duration      { return seconds(c.Overload.ShakeSeconds) }

// Shake returns the shake duration of a click row, zero when unset
func (cc ClickConfig) Shake() time.Duration {
	return seconds(cc.ShakeSeconds)
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: GameConfig{
			WinThresholdSeconds:       parameter.WinThresholdSeconds,
			CooldownSeconds:           parameter.CooldownSeconds,
			PressTravelDistance:       parameter.PressTravelDistance,
			DelayedEffectDelaySeconds: parameter.DelayedEffectDelaySeconds,
			DelayedEffectClip:         parameter.DelayedEffectClip,
			WarningClearDelaySeconds:  parameter.WarningClearDelaySeconds,
		},
		FOV: FOVConfig{
			Base:        parameter.FOVBase,
			Low:         parameter.FOVLow,
			High:        parameter.FOVHigh,
			UpSeconds:   parameter.FOVUpSeconds,
			DownSeconds: parameter.FOVDownSeconds,
			Repeat:      parameter.FOVRepeat,
		},
		Shake: ShakeConfig{
			MinMagnitude:    parameter.ShakeMinMagnitude,
			MaxMagnitude:    parameter.ShakeMaxMagnitude,
			IntervalSeconds: parameter.ShakeIntervalSeconds,
		},
		ColorCycle: ColorCycleConfig{
			IntervalSeconds: parameter.ColorCycleIntervalSeconds,
		},
		Overload: OverloadConfig{
			IntensityMin:  parameter.OverloadIntensityMin,
			IntensityMax:  parameter.OverloadIntensityMax,
			IntensityStep: parameter.OverloadIntensityStep,
			DensityMin:    parameter.OverloadDensityMin,
			DensityMax:    parameter.OverloadDensityMax,
			ShakeSeconds:  parameter.OverloadShakeSeconds,
			Clip:          parameter.OverloadClip,
		},
		Audio: AudioConfig{
			Volume: 0.8,
		},
		Clicks: DefaultClicks(),
	}
}

func boolPtr(b bool) *bool { return &b }

// DefaultClicks is the seven-row escalation table
func DefaultClicks() []ClickConfig {
	return []ClickConfig{
		// 1: the room goes dark
		{
			Light:     &LightConfig{Enabled: false, Color: "#ffffff", Intensity: 1},
			Fog:       &FogConfig{Enabled: true, Mode: "exponential", Color: "#808080", Density: 0.01},
			Particles: boolPtr(false),
			Audio:     parameter.ClipClick,
			Warning:   "Don't touch it.",
		},
		// 2: red light, hum
		{
			Light: &LightConfig{Enabled: true, Color: "#ff0000", Intensity: 0.5},
			Fog:   &FogConfig{Enabled: true, Mode: "exponential", Color: "#3a0000", Density: 0.03},
			Audio: parameter.ClipHum,
		},
		// 3: fog wall closes in
		{
			Fog:          &FogConfig{Enabled: true, Mode: "linear", Color: "#2a1010", LinearStart: 0, LinearEnd: 40},
			ShakeSeconds: 0.5,
		},
		// 4: static
		{
			Fog:       &FogConfig{Enabled: true, Mode: "exponential", Color: "#200020", Density: 0.06},
			Particles: boolPtr(true),
			Audio:     parameter.ClipStatic,
			StopAudio: parameter.ClipHum,
			Ambient:   "#1a0026",
			FOVPulse:  true,
		},
		// 5: colors start to cycle
		{
			ColorCycle:   "start",
			ShakeSeconds: 1,
		},
		// 6: blackout with a hot light
		{
			Light: &LightConfig{Enabled: true, Color: "#ff2000", Intensity: 3},
			Fog:   &FogConfig{Enabled: true, Mode: "exponential", Color: "#000000", Density: 0.1},
			Audio: parameter.ClipAlarm,
		},
		// 7: last warning
		{
			Fog:          &FogConfig{Enabled: true, Mode: "exponential", Color: "#000000", Density: 0.15},
			ColorCycle:   "stop",
			ShakeSeconds: 2,
			FOVPulse:     true,
			Warning:      "Last warning.",
		},
	}
}
