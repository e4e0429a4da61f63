package migrate

import (
	"fmt"
	"os"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
)

var minecraftCommand = &cobra.Command{
	Use:     "minecraft <version>",
	Short:   "Migrate your Minecraft version to a newer version.",
	Aliases: []string{"mc"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		wanted := args[0]
		if wanted == pack.Manifest.Versions.Minecraft {
			fmt.Printf("Minecraft version is already %s!\n", wanted)
			return
		}

		mcVersions, err := cmdshared.GetValidMCVersions()
		if err != nil {
			fmt.Printf("Error getting Minecraft versions: %s\n", err)
			os.Exit(1)
		}
		if err := mcVersions.CheckValid(wanted); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		previous := pack.Manifest.Versions.Minecraft
		if err := setVersions(pack, wanted, ""); err != nil {
			fmt.Printf("Error writing %s: %s\n", core.ManifestFileName, err)
			os.Exit(1)
		}
		fmt.Printf("Successfully updated Minecraft version from %s to %s\n", previous, wanted)

		if cmdshared.PromptYesNo("Would you like to update your loader version to the latest version?", true) {
			loaderCommand.Run(loaderCommand, []string{"latest"})
		}
		fmt.Println("Run 'horizr update' to find mod versions for the new Minecraft version.")
	},
}

// setVersions changes the Minecraft and Fabric versions of pack and writes its manifest. Empty values are left alone.
func setVersions(pack *core.Pack, minecraft string, fabric string) error {
	if minecraft != "" {
		pack.Manifest.Versions.Minecraft = minecraft
	}
	if fabric != "" {
		pack.Manifest.Versions.Fabric = fabric
	}
	return pack.WriteManifest()
}

func init() {
	migrateCmd.AddCommand(minecraftCommand)
}
