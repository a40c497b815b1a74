package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ballstyle",
	Short: "Turns midi melodies into ball-impact clicks",
	Long: `Renders the melody of a midi file as percussive "ball-impact" audio at a chosen
difficulty, together with a rebuilt midi file and a verification render of it.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
