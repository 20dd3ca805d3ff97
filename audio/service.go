package audio

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/dontpress/config"
)

// AudioService owns the speaker device and the Player feeding it
// Handles graceful degradation when no audio device is available: the
// player still accepts clips, nothing reaches the device
type AudioService struct {
	cfg    config.AudioConfig
	rate   beep.SampleRate
	player *Player

	disabled atomic.Bool
	opened   atomic.Bool

	// Device hooks, swapped in tests
	openDevice  func(sr beep.SampleRate, bufferSize int) error
	play        func(s ...beep.Streamer)
	closeDevice func()
}

// NewService creates an audio service from configuration
func NewService(cfg config.AudioConfig) *AudioService {
	return &AudioService{
		cfg:         cfg,
		rate:        DefaultSampleRate,
		openDevice:  speaker.Init,
		play:        speaker.Play,
		closeDevice: speaker.Close,
	}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// Opens the device; sets disabled flag on failure (no error returned)
func (s *AudioService) Init() error {
	s.player = NewPlayer(s.rate, s.cfg.Volume)
	s.player.SetMuted(s.cfg.Mute)

	if err := s.openDevice(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		log.Printf("audio: device unavailable, continuing silent: %v", err)
		s.disabled.Store(true)
		return nil
	}
	s.opened.Store(true)
	s.player.Attach(speaker.Lock, speaker.Unlock)
	return nil
}

// Start implements Service
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.player == nil {
		return nil
	}
	s.play(s.player.Streamer())
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.player != nil {
		s.player.StopAll()
	}
	if s.opened.CompareAndSwap(true, false) {
		s.closeDevice()
	}
	return nil
}

// Player returns the audio actuator, nil before Init
func (s *AudioService) Player() *Player {
	return s.player
}

// Disabled reports whether the device could not be opened
func (s *AudioService) Disabled() bool {
	return s.disabled.Load()
}
