package rebuild

import (
	"math"

	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/util"
)

// FromNoteEvents builds a single instrument midi file (program 0, not
// percussion) from transformed notes. Pitch and velocity are rounded half
// away from zero and clamped to 0..127. Fractional pitch is lost.
func FromNoteEvents(notes []model.NoteEvent) model.MidiFile {
	mf := model.MidiFile{Program: 0, IsPercussion: false}
	for _, n := range notes {
		mf.Notes = append(mf.Notes, model.MidiNote{
			Start:    n.Start,
			End:      n.End,
			Pitch:    RoundPitch(n.Pitch),
			Velocity: VolumeToVelocity(n.Volume),
		})
	}
	return mf
}

// ToNoteEvents is the reverse mapping used to render a rebuilt file.
func ToNoteEvents(mf model.MidiFile) []model.NoteEvent {
	res := make([]model.NoteEvent, 0, len(mf.Notes))
	for _, n := range mf.Notes {
		res = append(res, model.NoteEvent{
			Start:  n.Start,
			End:    n.End,
			Pitch:  float64(n.Pitch),
			Volume: VelocityToVolume(n.Velocity),
		})
	}
	return res
}

func RoundPitch(pitch float64) uint8 {
	return uint8(util.Clamp(math.Round(pitch), 0, 127))
}

func VolumeToVelocity(volume float64) uint8 {
	return uint8(util.Clamp(math.Round(volume*100), 0, 127))
}

func VelocityToVolume(velocity uint8) float64 {
	return float64(velocity) / 100
}
