package url

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/horizr/horizr/cmd"
	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sideFlag = cmdshared.SideValue{Side: core.UniversalSide}

var installCmd = &cobra.Command{
	Use:     "add <name> <url>",
	Short:   "Add an external file from a direct download link",
	Long:    "Add an external file from a direct download link. The file is downloaded once to compute its hashes and size. Entries added this way are never updated.",
	Aliases: []string{"install", "get"},
	Args:    cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()

		dl, err := url.Parse(args[1])
		if err != nil {
			fmt.Println("Failed parsing URL:", err)
			os.Exit(1)
		}
		if dl.Scheme != "https" && dl.Scheme != "http" {
			fmt.Println("Unsupported url scheme", dl.Scheme)
			os.Exit(1)
		}
		if dl.Host == "modrinth.com" && !viper.GetBool("url.add.force") {
			fmt.Println("Consider using horizr modrinth activate", args[1], "instead. If you know what you are doing use --force to add this file anyway.")
			os.Exit(1)
		}

		ctx, cancel := cmd.Context()
		defer cancel()

		fmt.Printf("Downloading %s...\n", args[1])
		mf, err := addURLEntry(ctx, pack, args[0], args[1], sideFlag.Side, viper.GetString("url.add.version"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Successfully added %s as %s.\n", args[0], mf.RelPath)
	},
}

// addURLEntry downloads rawURL and writes a raw entry for it. label defaults to the file name without its extension.
func addURLEntry(ctx context.Context, pack *core.Pack, name string, rawURL string, side core.Side, label string) (*core.MetaFile, error) {
	fileName, err := core.FileNameFromURL(rawURL)
	if err != nil {
		return nil, err
	}
	if label == "" {
		label = strings.TrimSuffix(fileName, path.Ext(fileName))
	}

	digest, err := core.DownloadAndHash(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}

	id := core.Slugify(name)
	if id == "" {
		id = core.Slugify(label)
	}
	size := digest.Size
	return pack.AddMetaFile(side, pack.FreeID(id), core.MetaContent{
		DisplayName: name,
		Enabled:     true,
		Version: core.FileRecord{
			Name:        label,
			Size:        &size,
			FileName:    fileName,
			DownloadURL: rawURL,
			Hashes: core.FileHashes{
				SHA1:   digest.SHA1,
				SHA512: digest.SHA512,
			},
		},
		Source: core.RawSource{},
	})
}

func init() {
	urlCmd.AddCommand(installCmd)

	installCmd.Flags().Var(&sideFlag, "side", "The side of the file, "+cmdshared.SideNames)
	installCmd.Flags().String("version", "", "The version label of the file (default is the file name without extension)")
	_ = viper.BindPFlag("url.add.version", installCmd.Flags().Lookup("version"))
	installCmd.Flags().Bool("force", false, "Add the file even if it is hosted on Modrinth")
	_ = viper.BindPFlag("url.add.force", installCmd.Flags().Lookup("force"))
}
