package difficulty

import (
	"math"
	"math/rand"

	"github.com/jsphweid/ballstyle/constants"
	"github.com/jsphweid/ballstyle/model"
)

// Transformer applies a Profile to note events.
type Transformer struct {
	Profile         Profile
	Scale           Scale
	MaxNoteDuration float64

	// Rand feeds the jitter draw. Seed it for reproducible output.
	Rand *rand.Rand
}

// Transform returns a new slice; notes is left untouched. Notes that do not
// end after they start are dropped, so every result has End > Start.
func (tr Transformer) Transform(notes []model.NoteEvent) []model.NoteEvent {
	rng := tr.Rand
	if rng == nil && tr.Profile.JitterAmount != 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	res := make([]model.NoteEvent, 0, len(notes))
	for _, n := range notes {
		duration := n.End - n.Start
		if duration <= 0 {
			continue
		}
		if tr.MaxNoteDuration > 0 {
			duration = math.Min(duration, tr.MaxNoteDuration)
		}

		pitch := Blend(n.Pitch, tr.Profile.Difficulty)
		if tr.Profile.JitterAmount != 0 {
			pitch += (rng.Float64() - 0.5) * tr.Profile.JitterAmount
		}
		if tr.Profile.Quantize {
			pitch = tr.Scale.Nearest(pitch)
		}

		res = append(res, model.NoteEvent{
			Start:  n.Start,
			End:    n.Start + duration,
			Pitch:  pitch,
			Volume: n.Volume,
		})
	}
	return res
}

// Blend pulls pitch toward middle C by d in [0, 1].
func Blend(pitch, d float64) float64 {
	if d == 0 {
		return pitch
	}
	return pitch*(1-d) + constants.NeutralPitch*d
}
