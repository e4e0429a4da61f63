package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all the mods in the modpack",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		mods := pack.MetaFiles

		// Filter mods by side
		if viper.IsSet("list.side") && viper.GetString("list.side") != "" {
			side, err := core.ParseSide(viper.GetString("list.side"))
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			mods = filterEntries(mods, func(mf *core.MetaFile) bool { return mf.Side.Includes(side) || side == core.UniversalSide })
		}

		// Filter mods by pin status
		showPinned := viper.GetBool("list.pinned")
		showUnpinned := viper.GetBool("list.unpinned")
		if showPinned && showUnpinned {
			fmt.Println("Cannot specify both --pinned and --unpinned flags")
			os.Exit(1)
		}
		if showPinned || showUnpinned {
			mods = filterEntries(mods, func(mf *core.MetaFile) bool { return mf.Content.IgnoreUpdates == showPinned })
		}

		sort.SliceStable(mods, func(i, j int) bool {
			return strings.ToLower(mods[i].Name()) < strings.ToLower(mods[j].Name())
		})

		for _, mf := range mods {
			fmt.Println(listLine(mf))
		}
	},
}

func filterEntries(entries []*core.MetaFile, keep func(*core.MetaFile) bool) []*core.MetaFile {
	out := make([]*core.MetaFile, 0, len(entries))
	for _, mf := range entries {
		if keep(mf) {
			out = append(out, mf)
		}
	}
	return out
}

// listLine formats an entry as "name version (side)" plus its state flags
func listLine(mf *core.MetaFile) string {
	line := fmt.Sprintf("%s %s (%s)", mf.Name(), mf.Content.Version.Name, mf.Side)
	var flags []string
	if !mf.Content.Enabled {
		flags = append(flags, "disabled")
	}
	if mf.Content.IgnoreUpdates {
		flags = append(flags, "pinned")
	}
	if _, ok := mf.Content.Source.(core.RawSource); ok {
		flags = append(flags, "raw")
	}
	if len(flags) > 0 {
		line += " [" + strings.Join(flags, ", ") + "]"
	}
	return line
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("side", "s", "", "Filter mods by side (client, server or universal)")
	_ = viper.BindPFlag("list.side", listCmd.Flags().Lookup("side"))
	listCmd.Flags().Bool("pinned", false, "Show only pinned mods")
	_ = viper.BindPFlag("list.pinned", listCmd.Flags().Lookup("pinned"))
	listCmd.Flags().Bool("unpinned", false, "Show only unpinned mods")
	_ = viper.BindPFlag("list.unpinned", listCmd.Flags().Lookup("unpinned"))
}
