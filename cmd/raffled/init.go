package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pushchain/push-raffle-node/relayer/config"
)

func initCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to the home directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := v.GetString(flagHome)
			cfg, err := config.LoadDefaultConfig()
			if err != nil {
				return err
			}
			if err := config.Save(cfg, home); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote configuration to %s\n", config.Path(home))
			return nil
		},
	}
}
