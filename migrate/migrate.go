package migrate

import (
	"github.com/horizr/horizr/cmd"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate [minecraft|loader]",
	Short: "Migrate your Minecraft and loader versions to newer versions.",
}

func init() {
	cmd.Add(migrateCmd)
}
