package synth

import "github.com/jsphweid/ballstyle/constants"

// EchoConfig describes the bounce echoes added after every note. A Count of
// zero disables them.
type EchoConfig struct {
	Count int
	Delay float64
	Decay float64
}

// Config holds the synthesis parameters for one pipeline run.
type Config struct {
	SampleRate       int
	MaxNoteDuration  float64
	EnvelopeDecay    float64
	HarmonicWeights  []float64
	BackgroundVolume float64
	Echo             EchoConfig
}

func DefaultConfig() Config {
	return Config{
		SampleRate:       constants.DefaultSampleRate,
		MaxNoteDuration:  constants.DefaultMaxNoteDuration,
		EnvelopeDecay:    constants.DefaultEnvelopeDecay,
		HarmonicWeights:  constants.DefaultHarmonicWeights(),
		BackgroundVolume: constants.DefaultBackgroundVolume,
		Echo: EchoConfig{
			Delay: constants.DefaultEchoDelay,
			Decay: constants.DefaultEchoDecay,
		},
	}
}

// LoadConfig starts from the defaults and applies BALLSTYLE_* env vars.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleRate = constants.GetSampleRate()
	cfg.MaxNoteDuration = constants.GetMaxNoteDuration()
	cfg.EnvelopeDecay = constants.GetEnvelopeDecay()
	cfg.HarmonicWeights = constants.GetHarmonicWeights()
	cfg.BackgroundVolume = constants.GetBackgroundVolume()
	return cfg
}
