// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the learnpath CLI: screened,
// multi-source research into how to learn a topic, with verified
// learning-resource recommendations.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/learnpath/internal/secrets"
	"github.com/pdiddy/learnpath/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the learnpath CLI.
var rootCmd = &cobra.Command{
	Use:   "learnpath",
	Short: "Research how to learn any topic",
	Long: `learnpath researches learning resources for a topic across videos,
academic courses, books, certifications, government guides, articles, and
podcasts. Every request is screened for safety first, sources resolve
concurrently, and the assembled result is verified for coverage, quality,
and pedagogical ordering before it is shown.

Run 'learnpath research --topic <topic>' for a full run, or use the
safety, verify, results, and serve subcommands for the individual stages.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./learnpath.yaml or ~/.config/learnpath/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("learnpath")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "learnpath"))
		}
	}

	viper.SetEnvPrefix("LEARNPATH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, the config file, the environment, and the
// secrets directory into one Config.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	secrets.Fill(loadedSecrets, &cfg.Video.APIKey, &cfg.Classifier.APIKey)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
