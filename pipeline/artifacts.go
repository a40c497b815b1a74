package pipeline

import (
	"io"

	"github.com/jsphweid/ballstyle/audiofile"
	"github.com/jsphweid/ballstyle/midi"
	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/preview"
	"github.com/jsphweid/ballstyle/store"
	"github.com/jsphweid/ballstyle/synth"
)

type AudioKind int

const (
	AudioPrimary AudioKind = iota
	AudioVerify
)

// ArtifactWriter receives the outputs of every style.
type ArtifactWriter interface {
	WriteMidi(style synth.Style, mf model.MidiFile) error
	WriteAudio(style synth.Style, kind AudioKind, buf model.AudioBuffer) error
}

// PreviewWriter is optionally implemented by an ArtifactWriter that also
// wants a picture of each style.
type PreviewWriter interface {
	WritePreview(r Result) error
}

// Process runs the pipeline and hands every artifact to out.
func Process(tracks []model.Track, cfg Config, out ArtifactWriter) ([]Result, error) {
	results, err := Run(tracks, cfg)
	if err != nil {
		return nil, err
	}
	pw, withPreview := out.(PreviewWriter)
	for _, r := range results {
		if err := out.WriteMidi(r.Style, r.Midi); err != nil {
			return nil, err
		}
		if err := out.WriteAudio(r.Style, AudioPrimary, r.Audio); err != nil {
			return nil, err
		}
		if err := out.WriteAudio(r.Style, AudioVerify, r.Verify); err != nil {
			return nil, err
		}
		if withPreview {
			if err := pw.WritePreview(r); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

// SinkWriter stores artifacts in a store.Sink using names from Namer.
type SinkWriter struct {
	Sink    store.Sink
	Namer   store.Namer
	Written []string
}

func (s *SinkWriter) save(name string, write func(w io.WriteSeeker) error) error {
	if err := s.Sink.Save(name, write); err != nil {
		return err
	}
	s.Written = append(s.Written, s.Sink.Location(name))
	return nil
}

func (s *SinkWriter) WriteMidi(style synth.Style, mf model.MidiFile) error {
	return s.save(s.Namer.Name(style.String(), ".mid"), func(w io.WriteSeeker) error {
		return midi.WriteMidi(w, mf)
	})
}

func (s *SinkWriter) WriteAudio(style synth.Style, kind AudioKind, buf model.AudioBuffer) error {
	suffix := ".wav"
	if kind == AudioVerify {
		suffix = "_verify.wav"
	}
	return s.save(s.Namer.Name(style.String(), suffix), func(w io.WriteSeeker) error {
		return audiofile.EncodeWAV(w, buf)
	})
}

// PreviewSinkWriter also stores a png preview per style.
type PreviewSinkWriter struct {
	*SinkWriter
}

func (s PreviewSinkWriter) WritePreview(r Result) error {
	return s.save(s.Namer.Name(r.Style.String(), ".png"), func(w io.WriteSeeker) error {
		return preview.EncodePNG(w, r.Notes, r.Audio, r.Style.String())
	})
}
