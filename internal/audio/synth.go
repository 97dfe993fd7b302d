package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Synth plays synthesised effects through the system speaker.
// Every sound is generated on the fly, so there are no assets to load.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
}

// NewSynth creates a synth. Call Init before playing anything.
func NewSynth() *Synth {
	return &Synth{mixer: &beep.Mixer{}}
}

// Init opens the speaker. On failure the synth stays silent.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes a sound in. Calls before Init are ignored.
func (s *Synth) Play(snd Sound, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	st := newVolume(Stream(snd, sampleRate), volume)

	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// StartMusic loops the background tune at volume until Close.
func (s *Synth) StartMusic(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.music != nil {
		return
	}
	s.music = &beep.Ctrl{Streamer: newVolume(newMelody(sampleRate), volume)}

	speaker.Lock()
	s.mixer.Add(s.music)
	speaker.Unlock()
}

// Close silences everything.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	if s.music != nil {
		s.music.Paused = true
	}
	s.mixer.Clear()
	speaker.Unlock()

	s.music = nil
	s.initialized = false
}

// Stream builds the finite streamer for a sound effect.
func Stream(snd Sound, sr beep.SampleRate) beep.Streamer {
	switch snd {
	case SoundLaser:
		return newSweep(sr, 1400, 300, 120*time.Millisecond, true)
	case SoundPowerUp:
		return beep.Seq(
			tone(sr, 523.25, 70*time.Millisecond),
			tone(sr, 659.25, 70*time.Millisecond),
			tone(sr, 783.99, 110*time.Millisecond),
		)
	case SoundLaserHit:
		return newNoise(sr, 60*time.Millisecond)
	case SoundBlockHit:
		return tone(sr, 880, 40*time.Millisecond)
	case SoundLifeLost:
		return newSweep(sr, 440, 110, 400*time.Millisecond, false)
	default:
		return beep.Silence(0)
	}
}

func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(sr.N(d))
	}
	return beep.Take(sr.N(d), sine)
}

// newVolume maps a linear volume onto effects.Volume.
// math.Log2(0) is -Inf, so zero volume becomes silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1)), Silent: false}
}

// sweep glides from one frequency to another with a linear fade-out.
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
	square   bool
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration, square bool) *sweep {
	return &sweep{sr: sr, from: from, to: to, total: sr.N(d), square: square}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		p := float64(g.pos) / float64(g.total)
		freq := g.from + (g.to-g.from)*p
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		v := math.Sin(g.phase)
		if g.square {
			v = 0.6 * math.Copysign(1, v)
		}
		v *= 1 - p

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }

// noise is a short decaying burst of white noise.
type noise struct {
	total int
	pos   int
	seed  uint32
}

func newNoise(sr beep.SampleRate, d time.Duration) *noise {
	return &noise{total: sr.N(d), seed: 0x2545f491}
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		g.seed = g.seed*1664525 + 1013904223
		v := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		v *= math.Exp(-6 * float64(g.pos) / float64(g.total))

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }

// melody is an endless bass arpeggio.
type melody struct {
	sr    beep.SampleRate
	step  int
	pos   int
	phase float64
}

var melodyNotes = []float64{110, 130.81, 164.81, 130.81, 98, 123.47, 146.83, 123.47}

func newMelody(sr beep.SampleRate) *melody {
	return &melody{sr: sr, step: sr.N(250 * time.Millisecond)}
}

func (g *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := melodyNotes[(g.pos/g.step)%len(melodyNotes)]
		within := float64(g.pos%g.step) / float64(g.step)
		g.phase += 2 * math.Pi * note / float64(g.sr)

		v := 0.5 * math.Sin(g.phase) * (1 - 0.7*within)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *melody) Err() error { return nil }
