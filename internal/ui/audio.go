package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundUpgrade
	SoundShield
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays procedurally generated sound effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates a new audio manager.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: true,
		volume:  0.5,
	}
	am.generateSounds()
	return am
}

func (am *AudioManager) generateSounds() {
	am.sounds[SoundMove] = synth(0.08, func(t, _ float64) float64 {
		return click(440, t) * 0.3
	})
	am.sounds[SoundCapture] = synth(0.12, func(t, _ float64) float64 {
		return click(330, t) * 0.5
	})
	// Rising arpeggio
	am.sounds[SoundUpgrade] = synth(0.36, func(t, p float64) float64 {
		notes := []float64{523.25, 659.25, 783.99}
		f := notes[min(int(p*3), 2)]
		return math.Sin(2*math.Pi*f*t) * attackDecay(math.Mod(p*3, 1)) * 0.35
	})
	// Shimmer with a slow beat
	am.sounds[SoundShield] = synth(0.3, func(t, p float64) float64 {
		wave := math.Sin(2*math.Pi*880*t) + math.Sin(2*math.Pi*886*t)
		return wave * 0.5 * attackDecay(p) * 0.35
	})
	am.sounds[SoundInvalid] = synth(0.1, func(t, p float64) float64 {
		wave := math.Sin(2*math.Pi*150*t) + 0.3*math.Sin(4*math.Pi*150*t)
		return wave * (1 - p) * 0.15
	})
	// C major chord
	am.sounds[SoundGameEnd] = synth(0.5, func(t, p float64) float64 {
		sum := 0.0
		for _, f := range []float64{261.63, 329.63, 392.00} {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		env := 1.0
		if p < 0.1 {
			env = p / 0.1
		} else if p > 0.7 {
			env = (1 - p) / 0.3
		}
		return sum / 3 * env * 0.5
	})
}

// synth renders duration seconds of 16-bit stereo PCM. wave receives the
// time in seconds and the progress through the sound in [0, 1).
func synth(duration float64, wave func(t, progress float64) float64) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		v := max(-1, min(1, wave(t, t/duration)))
		val := int16(v * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

// click is a percussive wood-like knock with exponential decay.
func click(freq, t float64) float64 {
	n := t * sampleRate
	noise := (math.Sin(n*0.3) + math.Sin(n*0.7)) * 0.3
	return (math.Sin(2*math.Pi*freq*t) + noise) * math.Exp(-t*30)
}

// attackDecay ramps up over the first 10% and down over the rest.
func attackDecay(p float64) float64 {
	if p < 0.1 {
		return p / 0.1
	}
	return 1 - (p-0.1)/0.9
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}

	// A fresh player per call lets sounds overlap.
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
