package difficulty

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

var ErrUnknownScalePreset = errors.New("unknown scale preset")

// Scale is the ordered list of pitches quantization may snap to. Order
// matters: on equal distance the earlier entry wins.
type Scale []float64

const RandomTriad = "random_triad"

var presets = map[string]Scale{
	"C_major":      {60, 62, 64, 65, 67, 69, 71},
	"A_minor":      {57, 59, 60, 62, 64, 65, 67},
	"single_C":     {60},
	"pentatonic_C": {60, 62, 64, 67, 69},
}

func DefaultScale() Scale {
	return Scale{60, 64, 67}
}

// PresetNames lists every accepted preset name, random_triad last.
func PresetNames() []string {
	return []string{"C_major", "A_minor", "single_C", "pentatonic_C", RandomTriad}
}

// ScaleForPreset returns a copy of the named preset. random_triad draws three
// distinct pitches from 48..71 with rng.
func ScaleForPreset(name string, rng *rand.Rand) (Scale, error) {
	if name == RandomTriad {
		return randomTriad(rng), nil
	}
	p, ok := presets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScalePreset, "%q", name)
	}
	return append(Scale(nil), p...), nil
}

func randomTriad(rng *rand.Rand) Scale {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	perm := rng.Perm(72 - 48)
	res := make(Scale, 3)
	for i := range res {
		res[i] = float64(48 + perm[i])
	}
	return res
}

// Nearest returns the member of s closest to pitch. Ties go to the first
// listed member. An empty scale returns pitch unchanged.
func (s Scale) Nearest(pitch float64) float64 {
	if len(s) == 0 {
		return pitch
	}
	best := s[0]
	bestDist := math.Abs(s[0] - pitch)
	for _, candidate := range s[1:] {
		if d := math.Abs(candidate - pitch); d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}

func (s Scale) Contains(pitch float64) bool {
	for _, v := range s {
		if v == pitch {
			return true
		}
	}
	return false
}
