package audiofile

import (
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/jsphweid/ballstyle/model"
	"github.com/pkg/errors"
)

// bufferStreamer streams a mono buffer as beep stereo frames.
type bufferStreamer struct {
	samples []float64
	pos     int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.samples) {
		v := s.samples[s.pos]
		samples[n][0] = v
		samples[n][1] = v
		n++
		s.pos++
	}
	return n, true
}

func (s *bufferStreamer) Err() error {
	return nil
}

func Format(sampleRate int) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
}

// EncodeWAV writes buf as 16 bit mono PCM.
func EncodeWAV(w io.WriteSeeker, buf model.AudioBuffer) error {
	if buf.SampleRate <= 0 {
		return errors.Errorf("invalid sample rate %v", buf.SampleRate)
	}
	streamer := &bufferStreamer{samples: buf.Samples}
	if err := wav.Encode(w, streamer, Format(buf.SampleRate)); err != nil {
		return errors.Wrap(err, "could not encode wav")
	}
	return nil
}

func WriteWAVFile(path string, buf model.AudioBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create wav file")
	}
	defer f.Close()
	return EncodeWAV(f, buf)
}

// ReadWAVFile decodes a mono or stereo wav back into a buffer, averaging
// channels.
func ReadWAVFile(path string) (model.AudioBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.AudioBuffer{}, errors.Wrap(err, "could not open wav file")
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return model.AudioBuffer{}, errors.Wrap(err, "could not decode wav")
	}
	defer streamer.Close()

	// beep's 16 bit mono decoder divides by 1<<16-1 instead of 1<<15-1,
	// which halves every sample.
	gain := 1.0
	if format.Precision == 2 && format.NumChannels == 1 {
		gain = float64(1<<16-1) / float64(1<<15-1)
	}

	res := model.AudioBuffer{SampleRate: int(format.SampleRate)}
	chunk := make([][2]float64, 4096)
	for {
		n, ok := streamer.Stream(chunk)
		for _, frame := range chunk[:n] {
			res.Samples = append(res.Samples, gain*(frame[0]+frame[1])/2)
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return model.AudioBuffer{}, errors.Wrap(err, "could not read wav samples")
	}
	return res, nil
}
