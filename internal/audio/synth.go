package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/last-letter/internal/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.totalSamples - e.position; remaining < e.release {
			vol = math.Max(float64(remaining)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain.
// math.Log2(0) is -Inf, so zero gain is handled as silence.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain), Silent: false}
}

// tone is one shaped note.
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	attack := 5 * time.Millisecond
	release := d / 2
	return newEnvelope(newOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// melody plays notes back to back.
func melody(freqs []float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = tone(f, d, wave, rate)
	}
	return beep.Seq(notes...)
}

// effectStreamer builds the unity-gain sound for an effect.
func effectStreamer(effect core.Effect, rate beep.SampleRate) beep.Streamer {
	switch effect {
	case core.EffectHit:
		// Bright two-note blip
		return newVolume(melody([]float64{880, 1318.51}, 60*time.Millisecond, WaveSquare, rate), 0.5)
	case core.EffectMiss:
		// Short low buzz
		return tone(110, 150*time.Millisecond, WaveSaw, rate)
	case core.EffectDamage:
		// Noise burst over a low thump
		d := 250 * time.Millisecond
		return beep.Mix(
			newVolume(tone(0, d, WaveNoise, rate), 0.5),
			newVolume(tone(70, d, WaveSine, rate), 0.5),
		)
	case core.EffectStart:
		// Rising C major arpeggio
		return melody([]float64{523.25, 659.25, 783.99, 1046.5}, 90*time.Millisecond, WaveSine, rate)
	case core.EffectGameOver:
		// Falling minor line
		return newVolume(melody([]float64{392, 311.13, 261.63, 196}, 180*time.Millisecond, WaveSquare, rate), 0.5)
	default:
		return nil
	}
}

// Render pre-renders an effect into a buffer at the given gain.
// Returns nil for unknown effects.
func Render(effect core.Effect, rate beep.SampleRate, gain float64) *beep.Buffer {
	s := effectStreamer(effect, rate)
	if s == nil {
		return nil
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(newVolume(s, gain))
	return buf
}
