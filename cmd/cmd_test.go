package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/ballstyle/audiofile"
	"github.com/jsphweid/ballstyle/midi"
	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func melodyMidi(t *testing.T) []byte {
	mf := model.MidiFile{Notes: []model.MidiNote{
		{Start: 0.0, End: 0.5, Pitch: 60, Velocity: 100},
		{Start: 0.5, End: 1.0, Pitch: 64, Velocity: 100},
	}}
	var buf bytes.Buffer
	require.NoError(t, midi.WriteMidi(&buf, mf))
	return buf.Bytes()
}

func writeMelody(t *testing.T, dir, name string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, melodyMidi(t), 0644))
	return path
}

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestBuildConfig(t *testing.T) {
	assert := assert.New(t)

	cfg, err := BuildConfig(RenderOptions{Level: 7, Scale: "single_C", Styles: "bell,sine", Seed: 3, EchoCount: 2})
	require.NoError(t, err)
	assert.True(cfg.Profile.Quantize)
	assert.Equal(0.7, cfg.Profile.Difficulty)
	assert.Equal([]synth.Style{synth.StyleBell, synth.StyleSine}, cfg.Styles)
	assert.Equal(2, cfg.Synth.Echo.Count)
	assert.Len(cfg.Scale, 1)

	cfg, err = BuildConfig(RenderOptions{Level: 1})
	require.NoError(t, err)
	assert.Equal(synth.AllStyles(), cfg.Styles)
	assert.NotNil(cfg.Rand)

	_, err = BuildConfig(RenderOptions{Scale: "lydian"})
	assert.Error(err)
	_, err = BuildConfig(RenderOptions{Styles: "trumpet"})
	assert.Error(err)
}

func TestRenderPathWritesEveryArtifact(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := writeMelody(t, in, "tune.mid")

	written, err := RenderPath(path, RenderOptions{Level: 1, Styles: "sine", Seed: 1, OutDir: out}, discard())
	require.NoError(t, err)
	require.Len(t, written, 3)

	assert := assert.New(t)
	assert.True(strings.HasSuffix(written[0], "_sine.mid"))
	assert.True(strings.HasSuffix(written[1], "_sine.wav"))
	assert.True(strings.HasSuffix(written[2], "_sine_verify.wav"))

	audio, err := audiofile.ReadWAVFile(written[1])
	require.NoError(t, err)
	assert.Len(audio.Samples, 88200)
}

func TestRenderPathSkipsBadFilesInDirectories(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeMelody(t, in, "a.mid")
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.mid"), []byte("junk"), 0644))

	var logs bytes.Buffer
	written, err := RenderPath(in, RenderOptions{Level: 3, Styles: "water", Seed: 1, OutDir: out}, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Len(t, written, 3)
	assert.Contains(t, logs.String(), "Skipping")

	_, err = RenderPath(filepath.Join(in, "b.mid"), RenderOptions{Styles: "water", OutDir: out}, discard())
	assert.Error(t, err)

	_, err = RenderPath(t.TempDir(), RenderOptions{OutDir: out}, discard())
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	tracks := []model.Track{
		{Name: "drums", IsPercussion: true, Channel: 9, Notes: []model.NoteEvent{{Start: 0, End: 0.1, Pitch: 36, Volume: 1}}},
		{Name: "lead", Notes: []model.NoteEvent{{Start: 0, End: 0.5, Pitch: 60, Volume: 1}}},
	}
	var out bytes.Buffer
	inspect(&out, tracks, true)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert := assert.New(t)
	assert.True(strings.HasPrefix(lines[0], "  track 0"))
	assert.True(strings.HasPrefix(lines[2], "* track 1"))
	assert.Contains(lines[3], "C4")
	assert.Contains(lines[3], "vel=127")
}

func TestHandleRender(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/render?style=sine&level=1&seed=4", bytes.NewReader(melodyMidi(t)))
	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal("audio/wav", resp.Header.Get("Content-Type"))
	assert.Equal("RIFF", string(body[:4]))
	// 16 bit mono plus the 44 byte header
	assert.Equal(44+2*88200, len(body))
	assert.NotEmpty(resp.Header.Get("X-Round-Trip-Error"))
}

func TestHandleRenderErrors(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		body   []byte
		status int
	}{
		{"unknown style", "style=trumpet", melodyMidi(t), http.StatusBadRequest},
		{"two styles", "style=sine,bell", melodyMidi(t), http.StatusBadRequest},
		{"unknown scale", "scale=lydian", melodyMidi(t), http.StatusBadRequest},
		{"bad level", "level=hard", melodyMidi(t), http.StatusBadRequest},
		{"not midi", "", []byte("nope"), http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/render?"+c.query, bytes.NewReader(c.body))
			w := httptest.NewRecorder()
			NewHandler().ServeHTTP(w, req)

			resp := w.Result()
			assert.Equal(t, c.status, resp.StatusCode)

			var e model.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestListEndpoints(t *testing.T) {
	handler := NewHandler()
	get := func(path string, v interface{}) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
	}

	assert := assert.New(t)

	var styles []model.StyleInfo
	get("/styles", &styles)
	assert.Equal([]model.StyleInfo{{Name: "metal"}, {Name: "sine"}, {Name: "water"}, {Name: "bell"}}, styles)

	var levels []model.LevelInfo
	get("/levels", &levels)
	require.Len(t, levels, 10)
	assert.Equal(model.LevelInfo{Level: 10, Difficulty: 1, JitterAmount: 0.5, Quantize: true}, levels[9])

	var scales []model.ScaleInfo
	get("/scales", &scales)
	require.Len(t, scales, 5)
	assert.Equal("pentatonic_C", scales[3].Name)
	assert.Equal([]float64{60, 62, 64, 67, 69}, scales[3].Pitches)
	assert.Empty(scales[4].Pitches)
}
