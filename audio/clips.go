package audio

import (
	"slices"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/dontpress/parameter"
)

// DefaultSampleRate is the device and synthesis rate
const DefaultSampleRate = beep.SampleRate(48000)

// clip describes one synthesized sound
// Looping clips stream forever until stopped; others end on their own
type clip struct {
	loop  bool
	build func(sr beep.SampleRate) beep.Streamer
}

var library = map[string]clip{
	parameter.ClipClick:  {build: clickSound},
	parameter.ClipHum:    {loop: true, build: humSound},
	parameter.ClipStatic: {loop: true, build: staticSound},
	parameter.ClipAlarm:  {build: alarmSound},
	parameter.ClipWin:    {build: winSound},
}

// Clips returns the ids the player can synthesize, sorted
func Clips() []string {
	ids := make([]string, 0, len(library))
	for id := range library {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Known reports whether id names a clip in the library
func Known(id string) bool {
	_, ok := library[id]
	return ok
}

// Looping reports whether id is a looping clip
func Looping(id string) bool {
	return library[id].loop
}

// clickSound is a short dull square blip, the button bottoming out
func clickSound(sr beep.SampleRate) beep.Streamer {
	const d = 40 * time.Millisecond
	osc := NewOscillator(180, d, WaveSquare, sr)
	return newVolume(NewEnvelope(osc, d, 2*time.Millisecond, 30*time.Millisecond, sr), 0.35)
}

// humSound is a low mains hum with a slow wobble
func humSound(sr beep.SampleRate) beep.Streamer {
	fund := newVolume(NewOscillator(55, 0, WaveSine, sr), 0.6)
	over := newVolume(NewOscillator(110, 0, WaveSaw, sr), 0.15)
	return newTremolo(beep.Mix(fund, over), sr, 0.5, 0.4)
}

// staticSound is band-less noise with a fast flutter
func staticSound(sr beep.SampleRate) beep.Streamer {
	noise := newVolume(NewOscillator(0, 0, WaveNoise, sr), 0.25)
	return newTremolo(noise, sr, 7, 0.6)
}

// alarmSound alternates two harsh tones
func alarmSound(sr beep.SampleRate) beep.Streamer {
	const (
		note   = 180 * time.Millisecond
		attack = 5 * time.Millisecond
		rel    = 20 * time.Millisecond
		cycles = 6
	)
	notes := make([]beep.Streamer, 0, cycles*2)
	for i := 0; i < cycles; i++ {
		hi := NewEnvelope(NewOscillator(880, note, WaveSaw, sr), note, attack, rel, sr)
		lo := NewEnvelope(NewOscillator(660, note, WaveSaw, sr), note, attack, rel, sr)
		notes = append(notes, hi, lo)
	}
	return newVolume(beep.Seq(notes...), 0.4)
}

// winSound is a rising three-note sine chime
func winSound(sr beep.SampleRate) beep.Streamer {
	const note = 220 * time.Millisecond
	freqs := []float64{523.25, 659.25, 783.99}
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := generators.SineTone(sr, f)
		if err != nil {
			// Above Nyquist; fall back to the internal oscillator
			tone = NewOscillator(f, note, WaveSine, sr)
		}
		notes = append(notes, NewEnvelope(beep.Take(sr.N(note), tone), note, 10*time.Millisecond, 120*time.Millisecond, sr))
	}
	return newVolume(beep.Seq(notes...), 0.5)
}
