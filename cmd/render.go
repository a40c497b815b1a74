package cmd

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jsphweid/ballstyle/constants"
	"github.com/jsphweid/ballstyle/difficulty"
	"github.com/jsphweid/ballstyle/midi"
	"github.com/jsphweid/ballstyle/pipeline"
	"github.com/jsphweid/ballstyle/store"
	"github.com/jsphweid/ballstyle/synth"
	"github.com/jsphweid/ballstyle/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type RenderOptions struct {
	Level          int
	Scale          string
	Styles         string
	Seed           int64
	RedrawPerStyle bool
	EchoCount      int
	Preview        bool
	OutDir         string
	S3Bucket       string
	S3Prefix       string
	MaxFiles       int
}

var renderOpts RenderOptions

func init() {
	f := renderCmd.Flags()
	f.IntVarP(&renderOpts.Level, "level", "l", 1, "difficulty level 1-10")
	f.StringVar(&renderOpts.Scale, "scale", "", "quantization scale preset (default C-E-G)")
	f.StringVar(&renderOpts.Styles, "styles", "", "comma separated styles (default all)")
	f.Int64Var(&renderOpts.Seed, "seed", 0, "random seed for jitter and random_triad (0 = time based)")
	f.BoolVar(&renderOpts.RedrawPerStyle, "redraw-per-style", false, "draw new pitch jitter for every style")
	f.IntVar(&renderOpts.EchoCount, "echo-count", 0, "number of bounce echoes after each note")
	f.BoolVar(&renderOpts.Preview, "preview", false, "also write a png preview per style")
	f.StringVarP(&renderOpts.OutDir, "out", "o", constants.GetOutDir(), "output directory")
	f.StringVar(&renderOpts.S3Bucket, "s3-bucket", constants.GetS3Bucket(), "upload artifacts to this bucket instead of --out")
	f.StringVar(&renderOpts.S3Prefix, "s3-prefix", "", "key prefix inside --s3-bucket")
	f.IntVar(&renderOpts.MaxFiles, "max", 0, "max number of midi files when rendering a directory")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <midi file or dir>",
	Short: "Renders midi files into ball-style audio",
	Long: `Renders midi files into ball-style audio. For every style it writes the
rendered wav, the rebuilt midi and a _verify.wav rendered from that midi.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := RenderPath(args[0], renderOpts, log.New(os.Stderr, "", log.LstdFlags))
		return err
	},
}

// BuildConfig turns command line options into a pipeline config. Synthesis
// defaults come from BALLSTYLE_* env vars.
func BuildConfig(opts RenderOptions) (pipeline.Config, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	cfg := pipeline.Config{
		Synth:          synth.LoadConfig(),
		Profile:        difficulty.ForLevel(opts.Level),
		Scale:          difficulty.DefaultScale(),
		Rand:           rng,
		RedrawPerStyle: opts.RedrawPerStyle,
	}
	cfg.Synth.Echo.Count = opts.EchoCount

	if opts.Scale != "" {
		scale, err := difficulty.ScaleForPreset(opts.Scale, rng)
		if err != nil {
			return cfg, err
		}
		cfg.Scale = scale
	}

	styles, err := synth.ParseStyles(opts.Styles)
	if err != nil {
		return cfg, err
	}
	cfg.Styles = styles
	return cfg, nil
}

func newSink(opts RenderOptions) (store.Sink, error) {
	if opts.S3Bucket != "" {
		return store.NewS3Sink(opts.S3Bucket, opts.S3Prefix, constants.GetS3Region(), constants.GetS3Endpoint())
	}
	return store.NewLocalSink(opts.OutDir)
}

func renderFile(path string, cfg pipeline.Config, sink store.Sink, withPreview bool) ([]string, error) {
	tracks, err := midi.LoadTracks(path)
	if err != nil {
		return nil, err
	}

	sw := &pipeline.SinkWriter{Sink: sink, Namer: store.NewNamer(util.BaseName(path), time.Now())}
	var out pipeline.ArtifactWriter = sw
	if withPreview {
		out = pipeline.PreviewSinkWriter{SinkWriter: sw}
	}
	if _, err := pipeline.Process(tracks, cfg, out); err != nil {
		return nil, err
	}
	return sw.Written, nil
}

// RenderPath renders a single file or every midi file below a directory and
// returns the locations of everything written. In directory mode a failing
// file is skipped.
func RenderPath(path string, opts RenderOptions, logger *log.Logger) ([]string, error) {
	cfg, err := BuildConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger

	paths, err := util.GatherAllMidiPaths(path, opts.MaxFiles)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no midi files found in %v", path)
	}

	sink, err := newSink(opts)
	if err != nil {
		return nil, err
	}

	var written []string
	for i, p := range paths {
		logger.Printf("Processing %v of %v midi files: %v", i+1, len(paths), p)
		files, err := renderFile(p, cfg, sink, opts.Preview)
		if err != nil {
			if len(paths) == 1 {
				return nil, errors.Wrap(err, p)
			}
			logger.Printf("Skipping %v because: %v", p, err)
			continue
		}
		for _, f := range files {
			fmt.Println(f)
		}
		written = append(written, files...)
	}
	return written, nil
}
