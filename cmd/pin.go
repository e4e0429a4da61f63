package cmd

import (
	"fmt"
	"os"

	"github.com/horizr/horizr/cmdshared"
	"github.com/spf13/cobra"
)

func pinMod(args []string, pinned bool) {
	pack := cmdshared.LoadPackOrExit()
	mf := cmdshared.FindEntryOrExit(pack, args[0])

	message := "pinned"
	if !pinned {
		message = "unpinned"
	}
	if mf.Content.IgnoreUpdates == pinned {
		fmt.Printf("%s is already %s\n", mf.RelPath, message)
		return
	}

	mf.Content.IgnoreUpdates = pinned
	if err := mf.Save(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("%s %s successfully!\n", mf.DisplayString(), message)
}

// pinCmd represents the pin command
var pinCmd = &cobra.Command{
	Use:     "pin <code>",
	Short:   "Pin a mod so it does not get updated",
	Aliases: []string{"hold"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pinMod(args, true)
	},
}

// unpinCmd represents the unpin command
var unpinCmd = &cobra.Command{
	Use:     "unpin <code>",
	Short:   "Unpin a mod so it receives updates",
	Aliases: []string{"unhold"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pinMod(args, false)
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
}
