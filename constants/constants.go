package constants

import (
	"os"
	"strconv"
	"strings"
)

const (
	DefaultSampleRate       = 44100
	DefaultMaxNoteDuration  = 1.5
	DefaultEnvelopeDecay    = 5.0
	DefaultBackgroundVolume = 0.0

	// seconds of silence appended after the last note
	TailSeconds = 1.0

	NeutralPitch = 60.0

	// tempo and resolution used when writing rebuilt midi files
	WriteResolution = 960
	WriteBPM        = 120.0

	DefaultEchoDelay = 0.06
	DefaultEchoDecay = 0.45
)

func DefaultHarmonicWeights() []float64 {
	return []float64{0.6, 0.3, 0.1}
}

func GetOutDir() string {
	path := os.Getenv("BALLSTYLE_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetSampleRate() int {
	if v := os.Getenv("BALLSTYLE_SAMPLE_RATE"); v != "" {
		if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
			return rate
		}
	}
	return DefaultSampleRate
}

func GetMaxNoteDuration() float64 {
	return getPositiveFloat("BALLSTYLE_MAX_NOTE_DURATION", DefaultMaxNoteDuration)
}

func GetEnvelopeDecay() float64 {
	return getPositiveFloat("BALLSTYLE_ENVELOPE_DECAY", DefaultEnvelopeDecay)
}

func GetBackgroundVolume() float64 {
	if v := os.Getenv("BALLSTYLE_BACKGROUND_VOLUME"); v != "" {
		if vol, err := strconv.ParseFloat(v, 64); err == nil {
			if vol < 0 {
				return 0
			}
			if vol > 1 {
				return 1
			}
			return vol
		}
	}
	return DefaultBackgroundVolume
}

// GetHarmonicWeights parses a comma separated list such as "0.6,0.3,0.1".
// A malformed list falls back to the defaults as a whole.
func GetHarmonicWeights() []float64 {
	v := os.Getenv("BALLSTYLE_HARMONIC_WEIGHTS")
	if v == "" {
		return DefaultHarmonicWeights()
	}
	var res []float64
	for _, part := range strings.Split(v, ",") {
		w, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return DefaultHarmonicWeights()
		}
		res = append(res, w)
	}
	return res
}

func GetS3Bucket() string {
	return os.Getenv("BALLSTYLE_S3_BUCKET")
}

func GetS3Endpoint() string {
	return os.Getenv("BALLSTYLE_S3_ENDPOINT")
}

func GetS3Region() string {
	region := os.Getenv("BALLSTYLE_S3_REGION")
	if region != "" {
		return region
	}
	return "us-east-1"
}

func getPositiveFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
