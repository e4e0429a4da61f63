package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "horizr",
	Short: "A command line tool for creating and exporting Fabric modpacks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute starts the root command for horizr
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Add adds a new command as a subcommand to horizr
func Add(newCommand *cobra.Command) {
	rootCmd.AddCommand(newCommand)
}

// Context returns a context that is cancelled when the process receives an interrupt
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func init() {
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{Prefix: "horizr"}))
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.horizr.toml)")

	rootCmd.PersistentFlags().Bool("verbose", false, "Print debug output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().Bool("non-interactive", false, "Answer every confirmation with yes")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("non-interactive"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in the home directory and the horizr config directory with name ".horizr" (without extension).
		viper.AddConfigPath(home)
		if store, err := core.GetHorizrLocalStore(); err == nil {
			viper.AddConfigPath(store)
		}
		viper.SetConfigName(".horizr")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("horizr")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debug("Using config file", "path", viper.ConfigFileUsed())
	}
}
