package render

import (
	"math"

	"github.com/jsphweid/ballstyle/constants"
	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/synth"
	"github.com/jsphweid/ballstyle/util"
)

// Render mixes every note into one buffer that runs one second past the
// latest note end. Overlapping notes are summed and the result is clipped to
// [-1, 1] once at the end.
func Render(notes []model.NoteEvent, style synth.Style, cfg synth.Config) model.AudioBuffer {
	var maxEnd float64
	for _, n := range notes {
		maxEnd = math.Max(maxEnd, n.End)
	}
	buf := model.AudioBuffer{
		Samples:    make([]float64, util.SecondsToSamples(maxEnd+constants.TailSeconds, cfg.SampleRate)),
		SampleRate: cfg.SampleRate,
	}

	for _, n := range notes {
		duration := n.Duration()
		if duration <= 0 || n.Volume == 0 {
			continue
		}
		wave := synth.Synthesize(style, synth.Frequency(n.Pitch), duration, cfg)
		offset := util.SecondsToSamples(n.Start, cfg.SampleRate)
		length := util.SecondsToSamples(duration, cfg.SampleRate)

		mixInto(buf.Samples, wave, offset, length, n.Volume)
		addEchoes(buf.Samples, wave, offset, length, n.Volume, cfg)
	}

	Clip(buf.Samples)
	return buf
}

func addEchoes(dst, wave []float64, offset, length int, volume float64, cfg synth.Config) {
	echo := cfg.Echo
	if echo.Count <= 0 || echo.Delay <= 0 {
		return
	}
	gain := volume
	for k := 1; k <= echo.Count; k++ {
		gain *= echo.Decay
		delay := util.SecondsToSamples(float64(k)*echo.Delay, cfg.SampleRate)
		mixInto(dst, wave, offset+delay, length, gain)
	}
}

// mixInto adds the first length samples of wave, scaled by gain, at offset.
// Anything past the end of dst is dropped.
func mixInto(dst, wave []float64, offset, length int, gain float64) {
	if offset >= len(dst) {
		return
	}
	n := util.Min(length, len(wave))
	n = util.Min(n, len(dst)-offset)
	for i := 0; i < n; i++ {
		dst[offset+i] += wave[i] * gain
	}
}

func Clip(samples []float64) {
	for i, v := range samples {
		samples[i] = util.Clamp(v, -1.0, 1.0)
	}
}

func Peak(buf model.AudioBuffer) float64 {
	var m float64
	for _, v := range buf.Samples {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func RMS(buf model.AudioBuffer) float64 {
	if len(buf.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range buf.Samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(buf.Samples)))
}
