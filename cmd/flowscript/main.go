package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "0.1.0"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:     "flowscript",
		Short:   "Parse, inspect and run Flowscript data-flow programs",
		Long:    `flowscript is a CLI for running Flowscript programs: a small DSL for describing data-flow graphs over a JSON-like value.`,
		Version: version,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.flowscript.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(checkCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".flowscript")
		viper.AddConfigPath("$HOME")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("FLOWSCRIPT")
	viper.AutomaticEnv()
	viper.SetDefault("resolver.retry.max_attempts", 3)
	viper.SetDefault("resolver.retry.base_delay_ms", 100)
	viper.SetDefault("log.level", "info")

	_ = viper.ReadInConfig() // config file is optional
}
