package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/ballstyle/difficulty"
	"github.com/jsphweid/ballstyle/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scalesCmd)
	rootCmd.AddCommand(stylesCmd)
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Prints the difficulty table",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range levelInfos() {
			fmt.Printf("%2d: difficulty=%.1f jitter=%.2f quantize=%v\n", l.Level, l.Difficulty, l.JitterAmount, l.Quantize)
		}
	},
}

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "Prints the quantization scale presets",
	Run: func(cmd *cobra.Command, args []string) {
		printScales(os.Stdout)
	},
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Prints the available styles",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range styleInfos() {
			fmt.Println(s.Name)
		}
	},
}

func printScales(w io.Writer) {
	for _, s := range scaleInfos() {
		if s.Name == difficulty.RandomTriad {
			fmt.Fprintf(w, "%-13s 3 random pitches from 48-71\n", s.Name)
			continue
		}
		fmt.Fprintf(w, "%-13s %v\n", s.Name, s.Pitches)
	}
}

func levelInfos() []model.LevelInfo {
	var res []model.LevelInfo
	for i, p := range difficulty.Levels {
		res = append(res, model.LevelInfo{
			Level:        i + 1,
			Difficulty:   p.Difficulty,
			JitterAmount: p.JitterAmount,
			Quantize:     p.Quantize,
		})
	}
	return res
}

// scaleInfos leaves random_triad without pitches since they are drawn per run.
func scaleInfos() []model.ScaleInfo {
	var res []model.ScaleInfo
	for _, name := range difficulty.PresetNames() {
		info := model.ScaleInfo{Name: name, Pitches: []float64{}}
		if name != difficulty.RandomTriad {
			scale, _ := difficulty.ScaleForPreset(name, nil)
			info.Pitches = scale
		}
		res = append(res, info)
	}
	return res
}
