package model

// NoteEvent is a single note with absolute times in seconds. Pitch is a
// real-valued MIDI number so it can carry blend and jitter offsets.
type NoteEvent struct {
	Start  float64
	End    float64
	Pitch  float64
	Volume float64
}

func (n NoteEvent) Duration() float64 {
	return n.End - n.Start
}

type Track struct {
	Name         string
	Program      uint8
	Channel      uint8
	IsPercussion bool
	Notes        []NoteEvent
}

// MidiNote is a note as it is stored in a rebuilt midi file.
type MidiNote struct {
	Start    float64
	End      float64
	Pitch    uint8
	Velocity uint8
}

// MidiFile is a single instrument note collection. It is what the
// rebuilder produces and what the midi writer serializes.
type MidiFile struct {
	Program      uint8
	IsPercussion bool
	Notes        []MidiNote
}
