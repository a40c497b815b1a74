package midi

import (
	"bytes"
	"io"
	"os"

	"github.com/jsphweid/ballstyle/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	return ReadMidi(bytes.NewReader(dat))
}

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("error parsing midi file... %v", r)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

// LoadTracks reads a midi file and returns its instrument tracks.
func LoadTracks(filepath string) ([]model.Track, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	return GetTracks(s), nil
}
