package main

import (
	"fmt"

	sdkversion "github.com/cosmos/cosmos-sdk/version"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print raffled version info",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", sdkversion.Name)
			fmt.Fprintf(out, "App Name:   %s\n", sdkversion.AppName)
			fmt.Fprintf(out, "Version:    %s\n", sdkversion.Version)
			fmt.Fprintf(out, "Commit:     %s\n", sdkversion.Commit)
			fmt.Fprintf(out, "Build Tags: %s\n", sdkversion.BuildTags)
		},
	}
}
