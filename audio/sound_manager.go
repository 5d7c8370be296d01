package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	dropDuration = 180 * time.Millisecond
	popDuration  = 90 * time.Millisecond

	dropFreqStart = 220.0
	dropFreqEnd   = 70.0
	popFreq       = 880.0
)

// SoundManager plays short cues for objects entering and leaving the world
// Every method is safe to call before Initialize or after Cleanup, and then does nothing
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
}

// NewSoundManager creates a silent sound manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
	}
}

// Initialize opens the speaker at the given linear volume in [0, 1]
func (sm *SoundManager) Initialize(volume float64) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.setVolume(volume)

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// SetVolume changes the linear master volume, 0 mutes
func (sm *SoundManager) SetVolume(volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.setVolume(volume)
}

func (sm *SoundManager) setVolume(volume float64) {
	volume = min(max(volume, 0), 1)
	sm.volume.Silent = volume == 0
	if volume > 0 {
		sm.volume.Volume = math.Log2(volume)
	}
}

// Volume returns the linear master volume
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.volume.Silent {
		return 0
	}
	return math.Pow(2, sm.volume.Volume)
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup drops queued sounds and silences output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; an empty mixer leaves no artifacts
	sm.initialized = false
}

// PlayDrop plays the falling thud of a new object
func (sm *SoundManager) PlayDrop() {
	sm.play(beep.Take(sampleRate.N(dropDuration), NewDropGenerator(sampleRate)))
}

// PlayPop plays the short click of a collected object
func (sm *SoundManager) PlayPop() {
	sm.play(beep.Take(sampleRate.N(popDuration), NewPopGenerator(sampleRate)))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// DropGenerator generates a downward sine sweep with a fast decay
type DropGenerator struct {
	sr    beep.SampleRate
	pos   int
	phase float64
	total int
}

// NewDropGenerator creates a drop sound generator
func NewDropGenerator(sr beep.SampleRate) *DropGenerator {
	return &DropGenerator{
		sr:    sr,
		total: sr.N(dropDuration),
	}
}

func (g *DropGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.total), 1)
		freq := dropFreqStart + (dropFreqEnd-dropFreqStart)*progress

		// Accumulate phase so the sweep stays continuous
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		envelope := math.Exp(-progress * 5)
		sample := 0.35 * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *DropGenerator) Err() error {
	return nil
}

// PopGenerator generates a bright click with a short attack
type PopGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewPopGenerator creates a pop sound generator
func NewPopGenerator(sr beep.SampleRate) *PopGenerator {
	return &PopGenerator{sr: sr}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		attack := math.Min(t/0.005, 1)
		envelope := attack * math.Exp(-t*40)
		sample := 0.25 * envelope * (math.Sin(2*math.Pi*popFreq*t) + 0.5*math.Sin(2*math.Pi*popFreq*1.5*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}
