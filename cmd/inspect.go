package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/ballstyle/melody"
	"github.com/jsphweid/ballstyle/midi"
	"github.com/jsphweid/ballstyle/model"
	"github.com/jsphweid/ballstyle/util"
	"github.com/spf13/cobra"
)

var inspectNotes bool

func init() {
	inspectCmd.Flags().BoolVarP(&inspectNotes, "notes", "n", false, "print every note")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <midi file>",
	Short: "Inspects a midi file",
	Long:  `Lists the tracks of a midi file, marks the one picked as melody and optionally prints every note.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tracks, err := midi.LoadTracks(args[0])
		if err != nil {
			return err
		}
		inspect(os.Stdout, tracks, inspectNotes)
		return nil
	},
}

func inspect(w io.Writer, tracks []model.Track, withNotes bool) {
	mainIdx, err := melody.SelectMainTrack(tracks)
	if err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
	for i, track := range tracks {
		marker := " "
		if i == mainIdx {
			marker = "*"
		}
		fmt.Fprintf(w, "%s track %v: %q channel=%v program=%v percussion=%v notes=%v\n",
			marker, i, track.Name, track.Channel+1, track.Program, track.IsPercussion, len(track.Notes))
		if !withNotes {
			continue
		}
		for _, n := range track.Notes {
			fmt.Fprintf(w, "    %8.3f %8.3f  %-4s (%v) vel=%v\n",
				n.Start, n.End, util.NoteName(int(n.Pitch)), n.Pitch, int(n.Volume*127+0.5))
		}
	}
}
