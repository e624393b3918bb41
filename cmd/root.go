package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "1.0.0"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spritesheet",
	Short: "Pack sprites into a grid-aligned sheet and split sheets back apart",
	Long: `spritesheet stitches a collection of sprite images into a single
grid-aligned sheet and splits such sheets back into individual sprites.

Generation emits the sheet as PNG together with a metadata file describing the
grid, cell size, padding and labels, so a later split can recover the original
sprites without re-supplying any parameters.

Examples:
  # Stitch every sprite below ./frames into a 2x2 sheet
  spritesheet generate -i ./frames -o hero --grid 2,2

  # Same, with a 20px gap between cells
  spritesheet generate -i ./frames -o hero --grid 2,2 --padding 20,20

  # Split a sheet using its metadata sidecar
  spritesheet split -i hero.png -o ./out

  # Split with explicit parameters, dropping fully transparent sprites
  spritesheet split -i hero.png -o ./out --size 50,50 --padding 20,20 --exclude-blank

  # Start HTTP server
  spritesheet serve --port 8080`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.spritesheet.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".spritesheet" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".spritesheet")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// parsePair parses a "x,y" flag value into its two integer components.
func parsePair(value, flag string) (int, int, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%s must be in format 'x,y'", flag)
	}

	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid first value in %s: %v", flag, err)
	}

	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid second value in %s: %v", flag, err)
	}

	return first, second, nil
}
