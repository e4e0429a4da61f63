package cmd

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var downloadSideFlag = cmdshared.SideValue{Side: core.ClientSide}

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the mod files of a side and verify their hashes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		ctx, cancel := Context()
		defer cancel()

		side := downloadSideFlag.Side
		outDir := viper.GetString("download.output")
		if outDir == "" {
			outDir = filepath.Join(pack.ExportsDir, "download-"+string(side))
		}
		entries := downloadEntries(pack, side)

		progress := cmdshared.NewProgress("Downloading", len(entries))
		if !progress.Active() {
			fmt.Printf("Downloading %d mods...\n", len(entries))
		}
		err := downloadAll(ctx, entries, outDir, viper.GetInt("download.concurrency"), func(*core.MetaFile) {
			progress.Increment()
		})
		progress.Done()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Downloaded %d mods to %s\n", len(entries), outDir)
	},
}

// downloadEntries returns the enabled entries that are part of side
func downloadEntries(pack *core.Pack, side core.Side) []*core.MetaFile {
	return filterEntries(pack.MetaFiles, func(mf *core.MetaFile) bool {
		return mf.Content.Enabled && mf.Side.Includes(side)
	})
}

// downloadTarget is where the file of mf is placed below outDir
func downloadTarget(outDir string, mf *core.MetaFile) string {
	return filepath.Join(outDir, filepath.FromSlash(path.Join(path.Dir(mf.EffectivePath), mf.Content.Version.FileName)))
}

// downloadAll downloads the files of entries into outDir, at most concurrency at a time.
// onDone is called once per entry when its download ends, successful or not.
func downloadAll(ctx context.Context, entries []*core.MetaFile, outDir string, concurrency int, onDone func(*core.MetaFile)) error {
	if concurrency < 1 {
		concurrency = core.DefaultUpdateConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, mf := range entries {
		mf := mf
		g.Go(func() error {
			defer onDone(mf)
			record := mf.Content.Version
			if err := core.DownloadVerified(gctx, record.DownloadURL, downloadTarget(outDir, mf), record.Hashes.SHA512); err != nil {
				return fmt.Errorf("failed to download %s: %w", mf.DisplayString(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().Var(&downloadSideFlag, "side", "The side to download, "+cmdshared.SideNames)
	downloadCmd.Flags().StringP("output", "o", "", "The directory to download to (default is exports/download-<side>)")
	_ = viper.BindPFlag("download.output", downloadCmd.Flags().Lookup("output"))
	downloadCmd.Flags().IntP("concurrency", "c", core.DefaultUpdateConcurrency, "Number of concurrent downloads")
	_ = viper.BindPFlag("download.concurrency", downloadCmd.Flags().Lookup("concurrency"))
}
