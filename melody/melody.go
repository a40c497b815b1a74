package melody

import (
	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/util"
	"github.com/pkg/errors"
)

var (
	ErrNoMelodyTrack = errors.New("no non-percussion track found")
	ErrNoNotesFound  = errors.New("no notes found")
)

// SelectMainTrack returns the index of the non-percussion track with the
// most notes. The first such track wins a tie.
func SelectMainTrack(tracks []model.Track) (int, error) {
	best := -1
	for i, track := range tracks {
		if track.IsPercussion {
			continue
		}
		if best == -1 || len(track.Notes) > len(tracks[best].Notes) {
			best = i
		}
	}
	if best == -1 {
		return -1, ErrNoMelodyTrack
	}
	return best, nil
}

// ExtractNoteEvents flattens every track into one list. Notes of the main
// track get full volume, all others backgroundVolume.
func ExtractNoteEvents(tracks []model.Track, mainIdx int, backgroundVolume float64) ([]model.NoteEvent, error) {
	backgroundVolume = util.Clamp(backgroundVolume, 0, 1)

	var res []model.NoteEvent
	for i, track := range tracks {
		volume := backgroundVolume
		if i == mainIdx {
			volume = 1.0
		}
		for _, n := range track.Notes {
			res = append(res, model.NoteEvent{
				Start:  n.Start,
				End:    n.End,
				Pitch:  n.Pitch,
				Volume: volume,
			})
		}
	}
	if len(res) == 0 {
		return nil, ErrNoNotesFound
	}
	return res, nil
}

// Extract selects the main track and flattens all tracks in one step.
func Extract(tracks []model.Track, backgroundVolume float64) ([]model.NoteEvent, int, error) {
	mainIdx, err := SelectMainTrack(tracks)
	if err != nil {
		return nil, -1, err
	}
	notes, err := ExtractNoteEvents(tracks, mainIdx, backgroundVolume)
	if err != nil {
		return nil, mainIdx, err
	}
	return notes, mainIdx, nil
}
