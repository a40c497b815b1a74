package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/ballstyle/audiofile"
	"github.com/jsphweid/ballstyle/difficulty"
	"github.com/jsphweid/ballstyle/melody"
	"github.com/jsphweid/ballstyle/midi"
	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/pipeline"
	"github.com/jsphweid/ballstyle/synth"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 16 << 20

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves renders over http",
	Long: `Serves renders over http. POST a midi file to /render?style=&level=&scale=&seed=
and get the wav back.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Printf("Listening on %v", serveAddr)
		log.Fatal(http.ListenAndServe(serveAddr, NewHandler()))
	},
}

// NewHandler returns the router wrapped in permissive CORS.
func NewHandler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", handleRender).Methods("POST")
	router.HandleFunc("/styles", handleStyles).Methods("GET")
	router.HandleFunc("/levels", handleLevels).Methods("GET")
	router.HandleFunc("/scales", handleScales).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		ExposedHeaders: []string{"X-Round-Trip-Error"},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, synth.ErrUnknownStyle),
		errors.Is(err, difficulty.ErrUnknownScalePreset),
		errors.Is(err, pipeline.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, melody.ErrNoMelodyTrack),
		errors.Is(err, melody.ErrNoNotesFound):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// renderOptionsFromQuery reads style, level, scale and seed. Missing values
// fall back to metal at level 1.
func renderOptionsFromQuery(r *http.Request) (RenderOptions, error) {
	q := r.URL.Query()
	opts := RenderOptions{Level: 1, Styles: q.Get("style"), Scale: q.Get("scale")}
	if opts.Styles == "" {
		opts.Styles = synth.StyleMetal.String()
	}
	if v := q.Get("level"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.Wrapf(pipeline.ErrInvalidConfig, "level %q", v)
		}
		opts.Level = level
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, errors.Wrapf(pipeline.ErrInvalidConfig, "seed %q", v)
		}
		opts.Seed = seed
	}
	return opts, nil
}

func handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptionsFromQuery(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	cfg, err := BuildConfig(opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if len(cfg.Styles) != 1 {
		writeError(w, http.StatusBadRequest, errors.New("exactly one style per request"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not read body"))
		return
	}
	s, err := midi.ReadMidi(bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results, err := pipeline.Run(midi.GetTracks(s), cfg)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	res := results[0]

	// beep needs a seekable writer, so the wav is staged on disk
	f, err := os.CreateTemp("", "ballstyle-*.wav")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := audiofile.EncodeWAV(f, res.Audio); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("X-Round-Trip-Error", fmt.Sprintf("%g", res.RoundTripError()))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("Could not stream wav: %v", err)
	}
}

func handleStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, styleInfos())
}

func handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, levelInfos())
}

func handleScales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scaleInfos())
}

func styleInfos() []model.StyleInfo {
	var res []model.StyleInfo
	for _, s := range synth.AllStyles() {
		res = append(res, model.StyleInfo{Name: s.String()})
	}
	return res
}
