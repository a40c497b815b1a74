package synth

import (
	"math"

	"github.com/jsphweid/ballstyle/util"
)

const (
	waterDecay = 10.0
	bellDecay  = 2.5
)

var (
	bellRatios  = []float64{1.0, 1.48, 1.94, 2.63}
	bellWeights = []float64{0.7, 0.2, 0.07, 0.03}
)

// Frequency maps a possibly fractional midi pitch to Hz.
func Frequency(pitch float64) float64 {
	return 440.0 * math.Pow(2, (pitch-69)/12)
}

// Synthesize renders one note of the given style. The result holds
// round(sampleRate*duration) samples taken at t = duration*i/n.
func Synthesize(style Style, freq, duration float64, cfg Config) []float64 {
	switch style {
	case StyleMetal:
		return MetalClick(freq, duration, cfg.SampleRate, cfg.HarmonicWeights, cfg.EnvelopeDecay)
	case StyleSine:
		return Sine(freq, duration, cfg.SampleRate, cfg.EnvelopeDecay)
	case StyleWater:
		return WaterDrop(freq, duration, cfg.SampleRate)
	case StyleBell:
		return Bell(freq, duration, cfg.SampleRate)
	}
	return nil
}

// MaxAmplitude is an upper bound on the absolute sample value Synthesize
// can produce for style.
func MaxAmplitude(style Style, cfg Config) float64 {
	switch style {
	case StyleMetal:
		var total float64
		for _, w := range cfg.HarmonicWeights {
			total += math.Abs(w)
		}
		return total
	case StyleSine, StyleWater:
		return 1
	case StyleBell:
		return util.Sum(bellWeights)
	}
	return 0
}

func MetalClick(freq, duration float64, sampleRate int, weights []float64, decay float64) []float64 {
	return generate(duration, sampleRate, func(t float64) float64 {
		var wave float64
		for i, w := range weights {
			wave += w * math.Sin(2*math.Pi*float64(i+1)*freq*t)
		}
		return wave * math.Exp(-decay*t)
	})
}

func Sine(freq, duration float64, sampleRate int, decay float64) []float64 {
	return generate(duration, sampleRate, func(t float64) float64 {
		return math.Sin(2*math.Pi*freq*t) * math.Exp(-decay*t)
	})
}

// WaterDrop tapers quadratically to zero at the end of the note on top of a
// steep exponential decay.
func WaterDrop(freq, duration float64, sampleRate int) []float64 {
	return generate(duration, sampleRate, func(t float64) float64 {
		taper := 1 - t/duration
		return math.Sin(2*math.Pi*freq*t) * taper * taper * math.Exp(-waterDecay*t)
	})
}

// Bell uses inharmonic partials.
func Bell(freq, duration float64, sampleRate int) []float64 {
	return generate(duration, sampleRate, func(t float64) float64 {
		var wave float64
		for i, w := range bellWeights {
			wave += w * math.Sin(2*math.Pi*freq*bellRatios[i]*t)
		}
		return wave * math.Exp(-bellDecay*t)
	})
}

func generate(duration float64, sampleRate int, fn func(t float64) float64) []float64 {
	if duration <= 0 || sampleRate <= 0 {
		return []float64{}
	}
	n := util.SecondsToSamples(duration, sampleRate)
	res := make([]float64, n)
	for i := range res {
		t := duration * float64(i) / float64(n)
		res[i] = fn(t)
	}
	return res
}
