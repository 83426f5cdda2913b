package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fastcraft",
	Short: "Fastcraft - developer experience tooling for Python projects",
	Long: `Fastcraft scaffolds Python projects, wraps GitHub and MkDocs
workflows, runs quality tools, and compacts a codebase into a terse
structural notation for LLM context.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fastcraft.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory and cwd with name ".fastcraft".
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fastcraft")
	}

	viper.SetEnvPrefix("FASTCRAFT")
	viper.AutomaticEnv()

	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// setConfigDefaults seeds the ignore lists and token model so the
// pipeline always receives explicit configuration.
func setConfigDefaults() {
	viper.SetDefault("compact.ignore_dirs", []string{
		"__pycache__",
		".git",
		".venv",
		"venv",
		"node_modules",
		".mypy_cache",
		".pytest_cache",
		".ruff_cache",
		"build",
		"dist",
	})
	viper.SetDefault("compact.ignore_files", []string{})
	viper.SetDefault("compact.token_model", "gpt-4")
	viper.SetDefault("verify.tools", defaultVerifyToolNames())
}
