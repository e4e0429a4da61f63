package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:     "update [code]",
	Short:   "Check all mods for updates or update a single mod",
	Aliases: []string{"upgrade"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		ctx, cancel := Context()
		defer cancel()

		allowed := allowedChannels(viper.GetBool("update.alpha"), viper.GetBool("update.beta"))
		resolver := &core.Resolver{
			Pack:        pack,
			Concurrency: viper.GetInt("update.concurrency"),
		}

		if len(args) == 0 {
			progress := cmdshared.NewProgress("Checking for updates", len(pack.MetaFiles))
			if progress.Active() {
				resolver.OnProgress = func(done int, total int) {
					progress.Increment()
				}
			} else {
				fmt.Printf("Checking %d mods for updates...\n", len(pack.MetaFiles))
			}

			candidates, err := resolver.CheckAll(ctx, allowed)
			progress.Done()
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			printUpdates(candidates)
			return
		}

		mf := cmdshared.FindEntryOrExit(pack, args[0])
		if _, ok := mf.Content.Source.(core.RawSource); ok {
			fmt.Printf("%s is not updatable.\n", mf.RelPath)
			os.Exit(1)
		}
		if mf.Content.IgnoreUpdates {
			fmt.Printf("%s is pinned, unpin it to update it.\n", mf.DisplayString())
			return
		}

		candidate, err := resolver.CheckOne(ctx, mf, allowed)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if candidate == nil {
			fmt.Println("No updates available.")
			return
		}

		fmt.Println("Changelog")
		fmt.Println()
		fmt.Println(candidate.ProposedLabel)
		if strings.TrimSpace(candidate.Changelog) == "" {
			fmt.Println("not provided")
		} else {
			fmt.Println(candidate.Changelog)
		}
		fmt.Println()

		if !viper.GetBool("update.yes") && !cmdshared.PromptYesNo(fmt.Sprintf("Update %s to %s?", mf.Name(), candidate.ProposedLabel), true) {
			return
		}
		if err := candidate.Apply(ctx); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Successfully updated %s to %s.\n", mf.DisplayString(), candidate.ProposedLabel)
	},
}

// allowedChannels always allows releases, alpha and beta versions only on request
func allowedChannels(alpha bool, beta bool) []core.ReleaseChannel {
	allowed := []core.ReleaseChannel{core.Release}
	if alpha {
		allowed = append(allowed, core.Alpha)
	}
	if beta {
		allowed = append(allowed, core.Beta)
	}
	return allowed
}

func printUpdates(candidates []core.UpdateCandidate) {
	if len(candidates) == 0 {
		fmt.Println("Everything up-to-date.")
		return
	}
	fmt.Println("Available updates")
	fmt.Println()
	for _, c := range candidates {
		fmt.Printf("- %s %s -> %s\n", c.Entry.DisplayString(), c.CurrentLabel, c.ProposedLabel)
	}
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolP("yes", "y", false, "Apply the update without asking")
	_ = viper.BindPFlag("update.yes", updateCmd.Flags().Lookup("yes"))
	updateCmd.Flags().BoolP("alpha", "a", false, "Allow alpha versions")
	_ = viper.BindPFlag("update.alpha", updateCmd.Flags().Lookup("alpha"))
	updateCmd.Flags().BoolP("beta", "b", false, "Allow beta versions")
	_ = viper.BindPFlag("update.beta", updateCmd.Flags().Lookup("beta"))
	updateCmd.Flags().IntP("concurrency", "c", core.DefaultUpdateConcurrency, "Number of concurrent update checks")
	_ = viper.BindPFlag("update.concurrency", updateCmd.Flags().Lookup("concurrency"))
}
