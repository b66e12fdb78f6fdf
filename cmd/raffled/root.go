package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix   = "RAFFLED"
	flagHome    = "home"
	defaultHome = ".raffled"
)

func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "raffled",
		Short:         "Cross-chain raffle node and relayer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(flagHome, defaultHomeDir(), "node home directory (env RAFFLED_HOME)")
	_ = v.BindPFlag(flagHome, rootCmd.PersistentFlags().Lookup(flagHome))

	rootCmd.AddCommand(
		initCmd(v),
		startCmd(v),
		demoCmd(),
		couponCmd(),
		versionCmd(),
	)
	return rootCmd
}

func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultHome
	}
	return filepath.Join(home, defaultHome)
}
