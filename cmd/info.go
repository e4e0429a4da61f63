package cmd

import (
	"fmt"
	"strings"

	"github.com/horizr/horizr/cmdshared"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print information about the pack",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		meta := pack.Manifest.Meta

		fmt.Printf("%s (%s)\n", meta.Name, meta.Version)
		if meta.Description != "" {
			fmt.Println(meta.Description)
		}
		fmt.Println()
		fmt.Printf("Authors: %s\n", strings.Join(meta.Authors, ", "))
		fmt.Printf("License: %s\n", strings.ToUpper(meta.License))
		fmt.Printf("Mods: %d\n", pack.ModCount())
		fmt.Println()
		fmt.Printf("Minecraft version: %s\n", pack.Manifest.Versions.Minecraft)
		fmt.Printf("Fabric loader version: %s\n", pack.Manifest.Versions.Fabric)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
