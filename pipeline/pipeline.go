package pipeline

import (
	"io"
	"log"
	"math"
	"math/rand"

	"github.com/jsphweid/ballstyle/difficulty"
	"github.com/jsphweid/ballstyle/melody"
	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/rebuild"
	"github.com/jsphweid/ballstyle/render"
	"github.com/jsphweid/ballstyle/synth"
	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is everything one run needs. Nothing is read from package state,
// so concurrent runs with separate configs do not interfere.
type Config struct {
	Synth   synth.Config
	Profile difficulty.Profile
	Scale   difficulty.Scale
	Styles  []synth.Style

	// Rand drives pitch jitter. nil seeds a fresh source.
	Rand *rand.Rand

	// RedrawPerStyle draws new jitter for every style instead of sharing
	// one transform across all of them.
	RedrawPerStyle bool

	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		Synth:   synth.DefaultConfig(),
		Profile: difficulty.ForLevel(difficulty.MinLevel),
		Scale:   difficulty.DefaultScale(),
		Styles:  synth.AllStyles(),
	}
}

func (c Config) validate() error {
	if c.Synth.SampleRate <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "sample rate %v", c.Synth.SampleRate)
	}
	for _, s := range c.Styles {
		if !s.Valid() {
			return errors.Wrapf(synth.ErrUnknownStyle, "style %d", int(s))
		}
	}
	if c.Profile.Quantize && len(c.Scale) == 0 {
		return errors.Wrap(ErrInvalidConfig, "quantization needs a non empty scale")
	}
	return nil
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}

func (c Config) styles() []synth.Style {
	if len(c.Styles) == 0 {
		return synth.AllStyles()
	}
	return c.Styles
}

// Result holds the artifacts of one style.
type Result struct {
	Style  synth.Style
	Notes  []model.NoteEvent
	Midi   model.MidiFile
	Audio  model.AudioBuffer
	Verify model.AudioBuffer
}

// RoundTripError is the largest per sample difference between the audio
// and its re-rendered verification.
func (r Result) RoundTripError() float64 {
	return MaxDiff(r.Audio, r.Verify)
}

func MaxDiff(a, b model.AudioBuffer) float64 {
	if len(a.Samples) != len(b.Samples) {
		return math.Inf(1)
	}
	var m float64
	for i := range a.Samples {
		m = math.Max(m, math.Abs(a.Samples[i]-b.Samples[i]))
	}
	return m
}

// RunStyle renders notes with style, rebuilds a midi file from them and
// renders that file again for verification.
func RunStyle(notes []model.NoteEvent, style synth.Style, cfg synth.Config) Result {
	mf := rebuild.FromNoteEvents(notes)
	return Result{
		Style:  style,
		Notes:  notes,
		Midi:   mf,
		Audio:  render.Render(notes, style, cfg),
		Verify: render.Render(rebuild.ToNoteEvents(mf), style, cfg),
	}
}

func Run(tracks []model.Track, cfg Config) ([]Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := cfg.logger()

	raw, mainIdx, err := melody.Extract(tracks, cfg.Synth.BackgroundVolume)
	if err != nil {
		return nil, err
	}
	logger.Printf("Main track: %v (%q), %v notes total", mainIdx, tracks[mainIdx].Name, len(raw))
	logger.Printf("Using %v", cfg.Profile)

	transformer := difficulty.Transformer{
		Profile:         cfg.Profile,
		Scale:           cfg.Scale,
		MaxNoteDuration: cfg.Synth.MaxNoteDuration,
		Rand:            cfg.Rand,
	}

	var shared []model.NoteEvent
	if !cfg.RedrawPerStyle {
		shared = transformer.Transform(raw)
	}

	var res []Result
	for _, style := range cfg.styles() {
		notes := shared
		if cfg.RedrawPerStyle {
			notes = transformer.Transform(raw)
		}
		r := RunStyle(notes, style, cfg.Synth)
		logger.Printf("Rendered %v: %.2fs, peak %.3f, rms %.4f, round trip error %.2g",
			style, r.Audio.Duration(), render.Peak(r.Audio), render.RMS(r.Audio), r.RoundTripError())
		res = append(res, r)
	}
	return res, nil
}
