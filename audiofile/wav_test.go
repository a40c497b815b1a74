package audiofile

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/render"
	"github.com/jsphweid/ballstyle/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadWAV(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.SampleRate = 8000
	buf := render.Render([]model.NoteEvent{{Start: 0, End: 0.5, Pitch: 69, Volume: 1}}, synth.StyleSine, cfg)

	path := filepath.Join(t.TempDir(), "out.wav")
	require.NoError(t, WriteWAVFile(path, buf))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("RIFF")))
	// 44 byte header + 16 bit mono samples
	assert.Equal(t, 44+2*len(buf.Samples), len(raw))

	decoded, err := ReadWAVFile(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(8000, decoded.SampleRate)
	assert.Len(decoded.Samples, len(buf.Samples))
	for i := range buf.Samples {
		assert.InDelta(buf.Samples[i], decoded.Samples[i], 1e-3)
	}
}

func TestReadKeepsFullScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.wav")
	require.NoError(t, WriteWAVFile(path, model.AudioBuffer{Samples: []float64{0.5, -0.5, 1.0}, SampleRate: 8000}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, 44+6)
	pcm := []int16{
		int16(binary.LittleEndian.Uint16(raw[44:46])),
		int16(binary.LittleEndian.Uint16(raw[46:48])),
		int16(binary.LittleEndian.Uint16(raw[48:50])),
	}

	decoded, err := ReadWAVFile(path)
	require.NoError(t, err)
	require.Len(t, decoded.Samples, 3)

	assert := assert.New(t)
	for i, v := range []float64{0.5, -0.5, 1.0} {
		assert.InDelta(v, decoded.Samples[i], 1e-4)
		assert.InDelta(float64(pcm[i])/(1<<15-1), decoded.Samples[i], 1e-9)
	}
}

func TestInvalidSampleRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	err := WriteWAVFile(path, model.AudioBuffer{Samples: []float64{0}, SampleRate: 0})
	assert.Error(t, err)
}

func TestStreamerChunks(t *testing.T) {
	s := &bufferStreamer{samples: []float64{0.1, 0.2, 0.3}}
	frames := make([][2]float64, 2)

	assert := assert.New(t)
	n, ok := s.Stream(frames)
	assert.Equal(2, n)
	assert.True(ok)
	assert.Equal([2]float64{0.2, 0.2}, frames[1])

	n, ok = s.Stream(frames)
	assert.Equal(1, n)
	assert.True(ok)

	n, ok = s.Stream(frames)
	assert.Equal(0, n)
	assert.False(ok)
}
