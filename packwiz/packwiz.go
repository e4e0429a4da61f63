package packwiz

import (
	"github.com/horizr/horizr/cmd"
	"github.com/spf13/cobra"
)

// ExportDirName is the directory below the exports directory holding the generated pack
const ExportDirName = "packwiz"

var packwizCmd = &cobra.Command{
	Use:     "packwiz",
	Aliases: []string{"pw"},
	Short:   "Export the pack in the packwiz format and serve it",
}

func init() {
	cmd.Add(packwizCmd)
}
