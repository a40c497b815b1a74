package midi

import (
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/ballstyle/constants"
	"github.com/jsphweid/ballstyle/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type tickEvent struct {
	tick  uint32
	isOff bool
	msg   gomidi.Message
}

func SecondsToTicks(seconds float64) uint32 {
	ticksPerSecond := float64(constants.WriteResolution) * constants.WriteBPM / 60
	return uint32(math.Round(math.Max(seconds, 0) * ticksPerSecond))
}

// ToSMF lays the notes out on a single track at a fixed tempo. Notes with
// velocity 0 are left out since a zero velocity note on reads as a note off.
func ToSMF(mf model.MidiFile) (*smf.SMF, error) {
	var channel uint8
	if mf.IsPercussion {
		channel = PercussionChannel
	}

	var events []tickEvent
	for _, n := range mf.Notes {
		if n.Velocity == 0 {
			continue
		}
		on := SecondsToTicks(n.Start)
		off := SecondsToTicks(n.End)
		if off <= on {
			off = on + 1
		}
		events = append(events,
			tickEvent{tick: on, msg: gomidi.NoteOn(channel, n.Pitch, n.Velocity)},
			tickEvent{tick: off, isOff: true, msg: gomidi.NoteOff(channel, n.Pitch)},
		)
	}

	// prioritize smaller ticks then note off
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isOff && !events[j].isOff
	})

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.WriteResolution)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("ballstyle"))
	tr.Add(0, smf.MetaTempo(constants.WriteBPM))
	tr.Add(0, gomidi.ProgramChange(channel, mf.Program))

	var last uint32
	for _, evt := range events {
		tr.Add(evt.tick-last, evt.msg)
		last = evt.tick
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return nil, errors.Wrap(err, "could not add track")
	}
	return s, nil
}

func WriteMidi(w io.Writer, mf model.MidiFile) error {
	s, err := ToSMF(mf)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not write midi")
	}
	return nil
}

func WriteMidiFile(path string, mf model.MidiFile) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create midi file")
	}
	defer f.Close()
	return WriteMidi(f, mf)
}
