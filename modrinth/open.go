package modrinth

import (
	"fmt"
	"net/url"
	"os"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:     "open <code>",
	Short:   "Open the Modrinth page of a mod in your browser",
	Aliases: []string{"doc"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		mf := cmdshared.FindEntryOrExit(pack, args[0])

		src, ok := mf.Content.Source.(core.ModrinthSource)
		if !ok {
			fmt.Printf("%s is not a Modrinth mod.\n", mf.RelPath)
			os.Exit(1)
		}

		fmt.Println("Opening browser...")
		link := projectURL(url.PathEscape(src.ModID))
		if err := open.Start(link); err != nil {
			fmt.Println("Opening page failed, direct link:")
			fmt.Println(link)
			return
		}
		fmt.Printf("Opened %s in your default browser.\n", link)
	},
}

func init() {
	modrinthCmd.AddCommand(openCmd)
}
