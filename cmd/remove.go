package cmd

import (
	"fmt"
	"os"

	"github.com/horizr/horizr/cmdshared"
	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove <code>",
	Short:   "Remove a mod from the modpack",
	Aliases: []string{"delete", "uninstall", "rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args[0]) == 0 {
			fmt.Println("You must specify a mod.")
			os.Exit(1)
		}
		pack := cmdshared.LoadPackOrExit()
		mf := cmdshared.FindEntryOrExit(pack, args[0])
		if err := pack.RemoveMetaFile(mf); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Mod %s removed successfully!\n", mf.DisplayString())
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
