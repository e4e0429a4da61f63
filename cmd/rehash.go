package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
)

// rehashCmd represents the rehash command
var rehashCmd = &cobra.Command{
	Use:   "rehash [code]",
	Short: "Download external files again and update their hashes and size",
	Long:  "Download the files of raw entries again and update their hashes and size. Without [code], every raw entry is rehashed. Modrinth entries get their hashes from the API and are skipped.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		ctx, cancel := Context()
		defer cancel()

		entries := pack.MetaFiles
		if len(args) == 1 {
			mf := cmdshared.FindEntryOrExit(pack, args[0])
			if _, ok := mf.Content.Source.(core.RawSource); !ok {
				fmt.Printf("%s is a Modrinth mod, its hashes are provided by Modrinth.\n", mf.DisplayString())
				os.Exit(1)
			}
			entries = []*core.MetaFile{mf}
		}

		changed := 0
		for _, mf := range entries {
			if _, ok := mf.Content.Source.(core.RawSource); !ok {
				continue
			}
			fmt.Printf("Downloading %s...\n", mf.Content.Version.DownloadURL)
			updated, err := rehashEntry(ctx, mf)
			if err != nil {
				fmt.Printf("Error rehashing %s: %v\n", mf.DisplayString(), err)
				os.Exit(1)
			}
			if updated {
				changed++
				fmt.Printf("Updated hashes of %s.\n", mf.DisplayString())
			}
		}
		if changed == 0 {
			fmt.Println("All hashes are up-to-date.")
		}
	},
}

// rehashEntry downloads the file of mf and saves the entry if its hashes or size changed
func rehashEntry(ctx context.Context, mf *core.MetaFile) (bool, error) {
	digest, err := core.DownloadAndHash(ctx, mf.Content.Version.DownloadURL)
	if err != nil {
		return false, err
	}

	record := &mf.Content.Version
	if record.Hashes.SHA1 == digest.SHA1 && record.Hashes.SHA512 == digest.SHA512 && record.Size != nil && *record.Size == digest.Size {
		return false, nil
	}
	record.Hashes = core.FileHashes{SHA1: digest.SHA1, SHA512: digest.SHA512}
	size := digest.Size
	record.Size = &size
	if err := mf.Save(); err != nil {
		return false, fmt.Errorf("failed to save %s: %w", mf.RelPath, err)
	}
	return true, nil
}

func init() {
	rootCmd.AddCommand(rehashCmd)
}
