package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Sink persists named artifacts. write receives a seekable target because
// the wav encoder patches its header after streaming the samples.
type Sink interface {
	Save(name string, write func(w io.WriteSeeker) error) error
	Location(name string) string
}

type LocalSink struct {
	Dir string
}

func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, errors.Wrap(err, "could not create output dir")
	}
	return &LocalSink{Dir: dir}, nil
}

func (s *LocalSink) Location(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *LocalSink) Save(name string, write func(w io.WriteSeeker) error) error {
	f, err := os.Create(s.Location(name))
	if err != nil {
		return errors.Wrap(err, "could not create "+name)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrap(err, "could not write "+name)
	}
	return f.Close()
}

// Namer produces artifact names that stay unique across runs of the same
// input: <base>_<timestamp>_<run id>_<suffix>.
type Namer struct {
	Base      string
	Timestamp string
	RunID     string
}

func NewNamer(base string, now time.Time) Namer {
	return Namer{
		Base:      base,
		Timestamp: now.Format("2006-01-02_15-04-05"),
		RunID:     strings.Split(uuid.New().String(), "-")[0],
	}
}

func (n Namer) Name(style, suffix string) string {
	return fmt.Sprintf("%s_%s_%s_%s%s", n.Base, n.Timestamp, n.RunID, style, suffix)
}
