package difficulty

import (
	"fmt"

	"github.com/jsphweid/ballstyle/util"
)

// Profile controls how far a melody is pulled away from its original pitches.
// Difficulty blends toward the neutral pitch, JitterAmount scales a random
// offset in [-0.5, 0.5) semitones and Quantize snaps to the active scale.
type Profile struct {
	Difficulty   float64
	JitterAmount float64
	Quantize     bool
}

func (p Profile) String() string {
	return fmt.Sprintf("difficulty=%v jitter=%v quantize=%v", p.Difficulty, p.JitterAmount, p.Quantize)
}

const (
	MinLevel = 1
	MaxLevel = 10
)

// Levels is indexed by level-1.
var Levels = [MaxLevel]Profile{
	{0.0, 0.0, false},
	{0.1, 0.05, false},
	{0.2, 0.10, false},
	{0.3, 0.15, false},
	{0.5, 0.20, false},
	{0.6, 0.25, true},
	{0.7, 0.30, true},
	{0.8, 0.35, true},
	{0.9, 0.40, true},
	{1.0, 0.50, true},
}

// ForLevel returns the profile for level, clamping out of range levels to 1..10.
func ForLevel(level int) Profile {
	level = util.Clamp(level, MinLevel, MaxLevel)
	return Levels[level-1]
}
