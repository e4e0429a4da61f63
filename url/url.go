package url

import (
	"github.com/horizr/horizr/cmd"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Add external files from a direct download link, for mods that are not on Modrinth",
}

func init() {
	cmd.Add(urlCmd)
}
