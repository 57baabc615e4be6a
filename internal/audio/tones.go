package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	// SampleRate is the rate shared by the ebiten audio context and the terminal speaker
	SampleRate = beep.SampleRate(44100)

	// BounceToneLength, ScoreToneLength and NoteToneLength bound RenderPCM for each tone
	BounceToneLength = 300 * time.Millisecond
	ScoreToneLength  = 500 * time.Millisecond
	NoteToneLength   = 200 * time.Millisecond

	bounceFrequency = 800.0
	bounceDecay     = 10.0

	scoreFrequency = 120.0
	scoreAttack    = 100 * time.Millisecond
	scoreRelease   = 200 * time.Millisecond
)

// NoteFrequency converts a MIDI pitch to Hz (A4 = 69 = 440Hz)
func NoteFrequency(pitch int) float64 {
	return 440.0 * math.Pow(2, float64(pitch-69)/12.0)
}

// NoteVolume converts a MIDI velocity to a linear gain in [0, 1]
func NoteVolume(velocity int) float64 {
	return math.Max(0, math.Min(1, float64(velocity)/127.0))
}

// BounceTone is the fallback "ping" played when no song is loaded.
func BounceTone(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(bounceFrequency, BounceToneLength, WaveSine, rate)
	return newVolume(NewDecay(osc, bounceDecay, rate), 0.5)
}

// ScoreTone is the low "hmm" played when a ball passes through a hole:
// a base tone plus second and third harmonics.
func ScoreTone(rate beep.SampleRate) beep.Streamer {
	partial := func(mult, gain float64) beep.Streamer {
		osc := NewOscillator(scoreFrequency*mult, ScoreToneLength, WaveSine, rate)
		return newVolume(NewEnvelope(osc, ScoreToneLength, scoreAttack, scoreRelease, rate), gain)
	}
	mixed := beep.Mix(
		partial(1, 1.0),
		partial(2, 0.3),
		partial(3, 0.1),
	)
	// 三个分量叠加峰值 1.4，缩放后不超过 1
	return newVolume(mixed, 0.7)
}

// NoteTone renders one song note with a linear fade to silence.
func NoteTone(pitch, velocity int, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(NoteFrequency(pitch), NoteToneLength, WaveSine, rate)
	shaped := NewEnvelope(osc, NoteToneLength, 0, NoteToneLength, rate)
	return newVolume(shaped, NoteVolume(velocity))
}
