package render

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/synth"
	"github.com/stretchr/testify/assert"
)

func twoNotes() []model.NoteEvent {
	return []model.NoteEvent{
		{Start: 0.0, End: 0.5, Pitch: 60, Volume: 1.0},
		{Start: 0.5, End: 1.0, Pitch: 64, Volume: 1.0},
	}
}

func TestTwoNoteScenario(t *testing.T) {
	cfg := synth.DefaultConfig()
	buf := Render(twoNotes(), synth.StyleSine, cfg)

	assert := assert.New(t)
	assert.Equal(44100, buf.SampleRate)
	assert.Len(buf.Samples, 88200)
	assert.InDelta(2.0, buf.Duration(), 1e-12)

	var energy float64
	for _, v := range buf.Samples[:44100] {
		energy += v * v
	}
	assert.Greater(energy, 0.0)

	for i, v := range buf.Samples[44100:] {
		if v != 0 {
			t.Fatalf("expected silence in tail, sample %v is %v", 44100+i, v)
		}
	}
}

func TestNotesLandAtTheirOffsets(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.SampleRate = 1000
	notes := []model.NoteEvent{{Start: 0.25, End: 0.5, Pitch: 69, Volume: 0.5}}
	buf := Render(notes, synth.StyleSine, cfg)
	wave := synth.Sine(synth.Frequency(69), 0.25, 1000, cfg.EnvelopeDecay)

	assert := assert.New(t)
	assert.Len(buf.Samples, 1500)
	for i := 0; i < 250; i++ {
		assert.Equal(0.0, buf.Samples[i])
	}
	for i := 0; i < 250; i++ {
		assert.InDelta(wave[i]*0.5, buf.Samples[250+i], 1e-12)
	}
	for i := 500; i < 1500; i++ {
		assert.Equal(0.0, buf.Samples[i])
	}
}

func TestOutputIsAlwaysClipped(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cfg := synth.DefaultConfig()
	cfg.SampleRate = 8000
	cfg.HarmonicWeights = []float64{1, 1, 1}

	for _, style := range synth.AllStyles() {
		t.Run(fmt.Sprintf("style %v", style), func(t *testing.T) {
			var notes []model.NoteEvent
			// a dense cluster guarantees the sum overshoots
			for i := 0; i < 40; i++ {
				start := rng.Float64() * 0.2
				if i%2 == 0 {
					start = 0
				}
				notes = append(notes, model.NoteEvent{
					Start:  start,
					End:    start + 0.3 + rng.Float64(),
					Pitch:  69,
					Volume: 1,
				})
			}
			buf := Render(notes, style, cfg)
			for _, v := range buf.Samples {
				if v < -1.0 || v > 1.0 {
					t.Fatalf("sample %v out of range", v)
				}
			}
			assert.Equal(t, 1.0, Peak(buf))
		})
	}
}

func TestSilentAndEmptyNotes(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.SampleRate = 1000

	assert := assert.New(t)
	buf := Render(nil, synth.StyleBell, cfg)
	assert.Len(buf.Samples, 1000)

	notes := []model.NoteEvent{
		{Start: 0, End: 0, Pitch: 60, Volume: 1},
		{Start: 0.2, End: 0.1, Pitch: 60, Volume: 1},
		{Start: 0, End: 0.5, Pitch: 60, Volume: 0},
	}
	buf = Render(notes, synth.StyleBell, cfg)
	assert.Len(buf.Samples, 1500)
	assert.Equal(0.0, Peak(buf))
}

func TestFractionalPitchRendersDifferently(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.SampleRate = 8000
	a := Render([]model.NoteEvent{{Start: 0, End: 0.5, Pitch: 60, Volume: 1}}, synth.StyleSine, cfg)
	b := Render([]model.NoteEvent{{Start: 0, End: 0.5, Pitch: 60.3, Volume: 1}}, synth.StyleSine, cfg)
	assert.NotEqual(t, a.Samples, b.Samples)
}

func TestEchoesAddDelayedCopies(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.SampleRate = 1000
	cfg.Echo = synth.EchoConfig{Count: 2, Delay: 0.1, Decay: 0.5}
	notes := []model.NoteEvent{{Start: 0, End: 0.05, Pitch: 69, Volume: 1}}

	dry := Render(notes, synth.StyleSine, synth.Config{SampleRate: 1000, EnvelopeDecay: cfg.EnvelopeDecay})
	wet := Render(notes, synth.StyleSine, cfg)

	assert := assert.New(t)
	assert.Equal(len(dry.Samples), len(wet.Samples))
	for i := 0; i < 50; i++ {
		assert.InDelta(dry.Samples[i], wet.Samples[i], 1e-12)
		assert.InDelta(dry.Samples[i]*0.5, wet.Samples[100+i], 1e-12)
		assert.InDelta(dry.Samples[i]*0.25, wet.Samples[200+i], 1e-12)
	}
}

func TestRMS(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.0, RMS(model.AudioBuffer{}))
	assert.InDelta(1/math.Sqrt(2), RMS(model.AudioBuffer{Samples: []float64{1, 0, -1, 0}}), 1e-12)
}
