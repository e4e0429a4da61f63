package modrinth

import (
	"fmt"
	"os"
	"strings"

	"github.com/horizr/horizr/cmd"
	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:     "search <query...>",
	Short:   "Search for Fabric mods compatible with the pack",
	Aliases: []string{"find", "s"},
	Args:    cobra.MinimumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		ctx, cancel := cmd.Context()
		defer cancel()

		query := strings.Join(args, " ")
		page, err := mrRegistry.SearchMods(ctx, pack.Manifest.Versions.Minecraft, query,
			viper.GetInt("modrinth.search.limit"), viper.GetInt("modrinth.search.skip"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if len(page.Mods) == 0 {
			fmt.Println("No mods found.")
			return
		}
		for i, mod := range page.Mods {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(searchResultString(mod))
		}
		if shown := viper.GetInt("modrinth.search.skip") + len(page.Mods); shown < page.Total {
			fmt.Printf("\n%d of %d results shown, use --skip to see more.\n", shown, page.Total)
		}
	},
}

func searchResultString(mod core.CatalogMod) string {
	return fmt.Sprintf("%s %s (↓ %d)\n%s", mod.ID, cmdshared.TruncateWithEllipsis(mod.Title, 30), mod.Downloads, mod.Description)
}

func init() {
	modrinthCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "l", 8, "Maximum number of results")
	_ = viper.BindPFlag("modrinth.search.limit", searchCmd.Flags().Lookup("limit"))
	searchCmd.Flags().IntP("skip", "s", 0, "Number of results to skip")
	_ = viper.BindPFlag("modrinth.search.skip", searchCmd.Flags().Lookup("skip"))
}
