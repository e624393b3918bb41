package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/spritesheet/internal/stitch"
	"github.com/kiesman99/spritesheet/pkg/sprite"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a sprite sheet from sprite files or directories",
	Long: `Generate a sprite sheet using all sprites provided. Directories are
searched depth-first; every file found must decode as an image. It is
recommended that all sprites are equally sized, since the cell size is the
maximum sprite extent and smaller sprites are not rescaled.

Next to the sheet, a '<output>-metadata.json' file describing the layout and a
'<output>-labels.txt' file with one label per sprite are written. Labels are
derived from file names by stripping a leading frame number ("03_hero.png"
becomes "hero").

Examples:
  # 2x2 sheet from four sprites
  spritesheet generate -i a.png -i b.png -i c.png -i d.png -o sheet --grid 2,2

  # One row of four with 10px gaps, inputs discovered from a folder
  spritesheet generate -i ./frames -o sheet --grid 1,4 --padding 10,10`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringSliceP("input", "i", []string{}, "path to each sprite file or folder (required)")
	generateCmd.Flags().StringP("output", "o", "", "path stem for the output sheet (required)")
	generateCmd.Flags().StringP("grid", "g", "", "grid size as 'rows,cols' (required)")
	generateCmd.Flags().String("padding", "0,0", "padding between cells as 'horizontal,vertical'")

	viper.BindPFlag("generate.input", generateCmd.Flags().Lookup("input"))
	viper.BindPFlag("generate.output", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("generate.grid", generateCmd.Flags().Lookup("grid"))
	viper.BindPFlag("generate.padding", generateCmd.Flags().Lookup("padding"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inputs := viper.GetStringSlice("generate.input")
	if len(inputs) == 0 {
		return fmt.Errorf("at least one input path is required (use --input)")
	}

	output := viper.GetString("generate.output")
	if output == "" {
		return fmt.Errorf("output path is required (use --output)")
	}

	gridStr := viper.GetString("generate.grid")
	if gridStr == "" {
		return fmt.Errorf("grid size is required (use --grid)")
	}
	rows, cols, err := parsePair(gridStr, "grid")
	if err != nil {
		return err
	}
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("grid rows and cols must be positive")
	}

	ph, pv, err := parsePair(viper.GetString("generate.padding"), "padding")
	if err != nil {
		return err
	}
	if ph < 0 || pv < 0 {
		return fmt.Errorf("padding must not be negative")
	}

	opts := &sprite.GenerateOptions{
		Output:  output,
		Grid:    sprite.GridSpec{Rows: rows, Cols: cols},
		Padding: sprite.Padding{Horizontal: ph, Vertical: pv},
	}

	stitcher := stitch.NewStitcher(afero.NewOsFs(), opts)
	if err := stitcher.Run(inputs); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "done.")
	return nil
}
