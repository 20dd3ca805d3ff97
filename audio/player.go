package audio

import (
	"log"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Player is the audio actuator: it mixes synthesized clips into one stream
// The stream is pulled by the speaker goroutine once attached; until then
// it can be drained directly, which is how tests observe it
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	out    *effects.Volume
	loops  map[string]*beep.Ctrl
	volume float64
	muted  bool

	// Guards mixer state against the speaker goroutine, no-ops until attached
	lock   func()
	unlock func()

	played uint64
}

// NewPlayer creates a detached player at the given rate and volume in [0,1]
func NewPlayer(rate beep.SampleRate, volume float64) *Player {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	volume = math.Max(0, math.Min(1, volume))
	mixer := &beep.Mixer{}
	p := &Player{
		rate:   rate,
		mixer:  mixer,
		out:    newVolume(mixer, volume),
		loops:  make(map[string]*beep.Ctrl),
		volume: volume,
		lock:   func() {},
		unlock: func() {},
	}
	return p
}

// Attach installs the device lock pair, normally speaker.Lock and speaker.Unlock
func (p *Player) Attach(lock, unlock func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lock, p.unlock = lock, unlock
}

// Streamer returns the mixed output stream
func (p *Player) Streamer() beep.Streamer {
	return p.out
}

// Rate returns the synthesis sample rate
func (p *Player) Rate() beep.SampleRate {
	return p.rate
}

// PlayAudio starts a clip; a looping clip already playing is not restarted
func (p *Player) PlayAudio(id string) {
	c, ok := library[id]

	p.mu.Lock()
	defer p.mu.Unlock()

	if !ok {
		log.Printf("audio: unknown clip %q", id)
		return
	}
	if c.loop {
		if _, playing := p.loops[id]; playing {
			return
		}
	}

	s := c.build(p.rate)
	p.lock()
	if c.loop {
		ctrl := &beep.Ctrl{Streamer: s}
		p.loops[id] = ctrl
		p.mixer.Add(ctrl)
	} else {
		p.mixer.Add(s)
	}
	p.unlock()
	p.played++
}

// StopAudio stops a looping clip; one-shot clips always run to completion
func (p *Player) StopAudio(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctrl, ok := p.loops[id]
	if !ok {
		return
	}
	delete(p.loops, id)

	// A nil streamer makes the Ctrl drain, so the mixer drops it
	p.lock()
	ctrl.Streamer = nil
	p.unlock()
}

// StopAll silences every clip, looping or not
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lock()
	for id, ctrl := range p.loops {
		ctrl.Streamer = nil
		delete(p.loops, id)
	}
	p.mixer.Clear()
	p.unlock()
}

// Playing reports whether a looping clip is active
func (p *Player) Playing(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.loops[id]
	return ok
}

// Voices returns the number of streams in the mixer, including drained ones
// not yet collected
func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}

// SetMuted silences output without stopping clips
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.applyGain()
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	p.applyGain()
	return p.muted
}

// Muted reports the mute state
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// SetVolume sets master volume, clamped to [0,1]
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Max(0, math.Min(1, v))
	p.applyGain()
}

// Played returns how many clips were started
func (p *Player) Played() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// applyGain must be called with mu held
func (p *Player) applyGain() {
	p.lock()
	defer p.unlock()
	p.out.Silent = p.muted || p.volume <= 0
	if p.volume > 0 {
		p.out.Volume = math.Log2(p.volume)
	}
}
