package synth

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownStyle = errors.New("unknown style")

// Style selects one of the built in oscillators.
type Style int

const (
	StyleMetal Style = iota
	StyleSine
	StyleWater
	StyleBell
	numStyles
)

var styleNames = [numStyles]string{
	StyleMetal: "metal",
	StyleSine:  "sine",
	StyleWater: "water",
	StyleBell:  "bell",
}

func (s Style) Valid() bool {
	return s >= 0 && s < numStyles
}

func (s Style) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return styleNames[s]
}

func AllStyles() []Style {
	res := make([]Style, 0, numStyles)
	for s := Style(0); s < numStyles; s++ {
		res = append(res, s)
	}
	return res
}

func ParseStyle(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for s, n := range styleNames {
		if n == key {
			return Style(s), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownStyle, "%q", name)
}

// ParseStyles parses a comma separated list. An empty list means every style.
func ParseStyles(list string) ([]Style, error) {
	if strings.TrimSpace(list) == "" {
		return AllStyles(), nil
	}
	var res []Style
	for _, name := range strings.Split(list, ",") {
		s, err := ParseStyle(name)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}
