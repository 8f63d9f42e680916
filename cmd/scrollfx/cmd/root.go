package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile        string
	viewportWidth  float64
	viewportHeight float64
	outputFormat   string
	runScripts     bool
	defaultEffect  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scrollfx",
	Short: "CLI for the scrollfx scroll-trigger engine",
	Long: `scrollfx loads HTML pages, attaches scroll triggers declared through
data-scrollfx attributes, and lets you inspect, simulate, and render the
resulting trigger behavior without a browser.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scrollfx/config)")
	rootCmd.PersistentFlags().Float64Var(&viewportWidth, "viewport-width", 0, "viewport width in pixels (default from config or 800)")
	rootCmd.PersistentFlags().Float64Var(&viewportHeight, "viewport-height", 0, "viewport height in pixels (default from config or 600)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table or json")
	rootCmd.PersistentFlags().BoolVar(&runScripts, "run-scripts", false, "execute the page's embedded scripts before attaching")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".scrollfx")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("scrollfx")
	viper.AutomaticEnv()

	viper.SetDefault("viewport_width", 800.0)
	viper.SetDefault("viewport_height", 600.0)
	viper.SetDefault("scroll_step", 100.0)
	viper.SetDefault("effect", "")

	// Missing config file is fine, everything has a default.
	_ = viper.ReadInConfig()

	if viewportWidth == 0 {
		viewportWidth = viper.GetFloat64("viewport_width")
	}
	if viewportHeight == 0 {
		viewportHeight = viper.GetFloat64("viewport_height")
	}
	defaultEffect = viper.GetString("effect")
}

// IsJSONOutput returns true if JSON output is requested
func IsJSONOutput() bool {
	return outputFormat == "json"
}
