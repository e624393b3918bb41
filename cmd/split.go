package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/spritesheet/internal/split"
	"github.com/kiesman99/spritesheet/pkg/sprite"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a sprite sheet into individual sprite files",
	Long: `Split all sprites in a sprite sheet into their own files.

Sprite size and padding come from explicit flags when given; otherwise they
are read from the '<sheet>-metadata.json' sidecar written at generation time.
Labels come from --labels, then from the metadata. Output files are numbered
by grid position ('1.png', '2.png', ...), with the label appended when one
exists ('1 hero.png').

Examples:
  # Split using the metadata sidecar
  spritesheet split -i sheet.png -o ./sprites

  # Split with explicit parameters, ignoring any metadata
  spritesheet split -i sheet.png -o ./sprites --size 50,50 --padding 20,20 --ignore-metadata

  # Refresh the output folder and skip fully transparent sprites
  spritesheet split -i sheet.png -o ./sprites --clear --exclude-blank`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringP("input", "i", "", "path to the sprite sheet file (required)")
	splitCmd.Flags().StringP("output", "o", "", "path to the output folder (required)")
	splitCmd.Flags().String("size", "", "size of each sprite as 'width,height' (overrides metadata)")
	splitCmd.Flags().String("padding", "", "padding between cells as 'horizontal,vertical' (overrides metadata)")
	splitCmd.Flags().StringP("labels", "l", "", "path to a label file, one label per line (overrides metadata)")
	splitCmd.Flags().String("separator", " ", "separator between index and label in output file names")
	splitCmd.Flags().Bool("clear", false, "clear the output directory before writing sprites")
	splitCmd.Flags().Bool("ignore-metadata", false, "ignore a metadata file found next to the sheet")
	splitCmd.Flags().Bool("exclude-blank", false, "skip fully transparent sprites")

	viper.BindPFlag("split.input", splitCmd.Flags().Lookup("input"))
	viper.BindPFlag("split.output", splitCmd.Flags().Lookup("output"))
	viper.BindPFlag("split.size", splitCmd.Flags().Lookup("size"))
	viper.BindPFlag("split.padding", splitCmd.Flags().Lookup("padding"))
	viper.BindPFlag("split.labels", splitCmd.Flags().Lookup("labels"))
	viper.BindPFlag("split.separator", splitCmd.Flags().Lookup("separator"))
	viper.BindPFlag("split.clear", splitCmd.Flags().Lookup("clear"))
	viper.BindPFlag("split.ignore-metadata", splitCmd.Flags().Lookup("ignore-metadata"))
	viper.BindPFlag("split.exclude-blank", splitCmd.Flags().Lookup("exclude-blank"))
}

func runSplit(cmd *cobra.Command, args []string) error {
	input := viper.GetString("split.input")
	if input == "" {
		return fmt.Errorf("sheet path is required (use --input)")
	}

	output := viper.GetString("split.output")
	if output == "" {
		return fmt.Errorf("output folder is required (use --output)")
	}

	opts := &sprite.SplitOptions{
		Input:          input,
		Output:         output,
		LabelPath:      viper.GetString("split.labels"),
		Separator:      viper.GetString("split.separator"),
		ClearDirectory: viper.GetBool("split.clear"),
		IgnoreMetadata: viper.GetBool("split.ignore-metadata"),
		ExcludeBlank:   viper.GetBool("split.exclude-blank"),
	}

	if sizeStr := viper.GetString("split.size"); sizeStr != "" {
		w, h, err := parsePair(sizeStr, "size")
		if err != nil {
			return err
		}
		if w <= 0 || h <= 0 {
			return fmt.Errorf("sprite size must be positive")
		}
		opts.Size = &sprite.CellSize{Width: w, Height: h}
	}

	if padStr := viper.GetString("split.padding"); padStr != "" {
		ph, pv, err := parsePair(padStr, "padding")
		if err != nil {
			return err
		}
		if ph < 0 || pv < 0 {
			return fmt.Errorf("padding must not be negative")
		}
		opts.Padding = &sprite.Padding{Horizontal: ph, Vertical: pv}
	}

	splitter := split.NewSplitter(afero.NewOsFs(), opts)
	if err := splitter.Run(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "done.")
	return nil
}
