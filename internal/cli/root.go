package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/outline/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "outline",
	Short: "Outline - structural summaries of Python source files",
	Long: `Outline parses Python source and reports what a file declares and uses:
its classes, functions, imports, and the calls made by its first function.

Settings come from .outline/config.yml in the project root and OUTLINE_*
environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <project>/.outline/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig sets up logging for the chosen verbosity.
func initConfig() {
	if viper.GetBool("verbose") {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// logVerbose logs only when --verbose is set.
func logVerbose(format string, args ...any) {
	if viper.GetBool("verbose") {
		log.Printf(format, args...)
	}
}

// loadConfig loads configuration for a project rooted at rootDir, honoring --config.
func loadConfig(rootDir string) (*config.Config, error) {
	var opts []config.LoaderOption
	if file := viper.GetString("config"); file != "" {
		opts = append(opts, config.WithConfigFile(file))
		logVerbose("Using config file: %s", file)
	}

	cfg, err := config.LoadConfigFromDir(rootDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// applyCap overrides the configured cap when --cap was given.
func applyCap(cmd *cobra.Command, cfg *config.Config, flagValue int) error {
	if !cmd.Flags().Changed("cap") {
		return nil
	}
	if flagValue < 0 {
		return fmt.Errorf("--cap must be >= 0, got %d", flagValue)
	}
	cfg.Summary.Cap = flagValue
	return nil
}
