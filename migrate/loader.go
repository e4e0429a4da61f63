package migrate

import (
	"fmt"
	"os"
	"slices"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/unascribed/FlexVer/go/flexver"
)

var loaderCommand = &cobra.Command{
	Use:   "loader [latest|<version>]",
	Short: "Migrate your Fabric loader version to a newer version.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		wanted := "latest"
		if len(args) == 1 {
			wanted = args[0]
		}

		versions, release, err := core.FetchMavenVersionList(core.FabricLoaderMetadataURL)
		if err != nil {
			fmt.Printf("Error getting Fabric loader versions: %s\n", err)
			os.Exit(1)
		}
		target, err := resolveLoaderVersion(wanted, versions, release)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		current := pack.Manifest.Versions.Fabric
		if target == current {
			fmt.Printf("Fabric loader is already %s!\n", target)
			return
		}
		if flexver.Less(target, current) && !cmdshared.PromptYesNo(fmt.Sprintf("%s is older than the current loader %s. Continue?", target, current), false) {
			return
		}
		if err := setVersions(pack, "", target); err != nil {
			fmt.Printf("Error writing %s: %s\n", core.ManifestFileName, err)
			os.Exit(1)
		}
		fmt.Printf("Successfully updated Fabric loader from %s to %s\n", current, target)
	},
}

// resolveLoaderVersion maps "latest" to the newest known loader and checks that explicit versions exist
func resolveLoaderVersion(wanted string, versions []string, release string) (string, error) {
	if wanted != "latest" {
		if !slices.Contains(versions, wanted) {
			return "", fmt.Errorf("%s is not a valid Fabric loader version", wanted)
		}
		return wanted, nil
	}
	return core.PickLatest(versions, release)
}

func init() {
	migrateCmd.AddCommand(loaderCommand)
}
