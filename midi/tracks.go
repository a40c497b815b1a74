package midi

import (
	"github.com/jsphweid/ballstyle/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// PercussionChannel is General MIDI channel 10.
const PercussionChannel = 9

type pendingNote struct {
	start    int64
	velocity uint8
}

type trackBuilder struct {
	name     string
	programs map[uint8]uint8
	channels []uint8
	notes    map[uint8][]model.NoteEvent
	open     map[uint16][]pendingNote
}

func newTrackBuilder() *trackBuilder {
	return &trackBuilder{
		programs: make(map[uint8]uint8),
		notes:    make(map[uint8][]model.NoteEvent),
		open:     make(map[uint16][]pendingNote),
	}
}

func noteKey(channel, key uint8) uint16 {
	return uint16(channel)<<8 | uint16(key)
}

func (b *trackBuilder) noteOn(absMicros int64, channel, key, velocity uint8) {
	k := noteKey(channel, key)
	b.open[k] = append(b.open[k], pendingNote{start: absMicros, velocity: velocity})
}

// noteOff closes the oldest open note with the same channel and key.
func (b *trackBuilder) noteOff(absMicros int64, channel, key uint8) {
	k := noteKey(channel, key)
	pending := b.open[k]
	if len(pending) == 0 {
		return
	}
	p := pending[0]
	b.open[k] = pending[1:]

	if _, ok := b.notes[channel]; !ok {
		b.channels = append(b.channels, channel)
	}
	b.notes[channel] = append(b.notes[channel], model.NoteEvent{
		Start:  float64(p.start) / 1e6,
		End:    float64(absMicros) / 1e6,
		Pitch:  float64(key),
		Volume: float64(p.velocity) / 127,
	})
}

func (b *trackBuilder) tracks() []model.Track {
	var res []model.Track
	for _, ch := range b.channels {
		res = append(res, model.Track{
			Name:         b.name,
			Program:      b.programs[ch],
			Channel:      ch,
			IsPercussion: ch == PercussionChannel,
			Notes:        b.notes[ch],
		})
	}
	return res
}

// GetTracks splits every smf track into one model.Track per midi channel,
// in order of first completed note. Notes that are never released are
// dropped. Times come from the file's tempo map.
func GetTracks(s *smf.SMF) []model.Track {
	var res []model.Track
	for _, events := range s.Tracks {
		b := newTrackBuilder()
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			msg := event.Message

			var channel, key, velocity, program uint8
			var text string
			switch {
			case msg.GetMetaTrackName(&text):
				if b.name == "" {
					b.name = text
				}
			case msg.GetProgramChange(&channel, &program):
				if _, ok := b.programs[channel]; !ok {
					b.programs[channel] = program
				}
			case msg.GetNoteStart(&channel, &key, &velocity):
				b.noteOn(s.TimeAt(absTicks), channel, key, velocity)
			case msg.GetNoteEnd(&channel, &key):
				b.noteOff(s.TimeAt(absTicks), channel, key)
			}
		}
		res = append(res, b.tracks()...)
	}
	return res
}
