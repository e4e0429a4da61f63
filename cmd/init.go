package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/igorsobreira/titlecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Initialise a horizr modpack in a directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if _, err := os.Stat(filepath.Join(dir, core.ManifestFileName)); err == nil {
			fmt.Printf("%s already exists in %s\n", core.ManifestFileName, args[0])
			os.Exit(1)
		} else if !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("Error checking manifest file: %s\n", err)
			os.Exit(1)
		}

		name := viper.GetString("init.name")
		if len(name) == 0 {
			if def := defaultPackName(dir); def != "" {
				name = initReadValue("Name ["+def+"]: ", def)
			} else {
				name = initReadValue("Name: ", "")
			}
		}

		authors := viper.GetString("init.authors")
		if len(authors) == 0 {
			authors = initReadValue("Authors (comma-separated): ", "")
		}

		description := viper.GetString("init.description")
		if !cmd.Flags().Changed("description") {
			description = initReadValue("Description: ", "")
		}

		license := viper.GetString("init.license")
		if len(license) == 0 {
			license = initReadValue("License (SPDX-ID): ", "")
		}

		mcVersions, err := cmdshared.GetValidMCVersions()
		if err != nil {
			fmt.Printf("Failed to get latest minecraft versions: %s\n", err)
			os.Exit(1)
		}
		mcVersion := viper.GetString("init.minecraft")
		if len(mcVersion) == 0 {
			latest := mcVersions.Latest.Release
			mcVersion = initReadValue("Minecraft version ["+latest+"]: ", latest)
		}
		if err := mcVersions.CheckValid(mcVersion); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fabricVersion := viper.GetString("init.fabric")
		if len(fabricVersion) == 0 {
			fabricVersion, err = core.LatestFabricLoader()
			if err != nil {
				fmt.Printf("Failed to get the latest Fabric loader version: %s\n", err)
				os.Exit(1)
			}
		}

		manifest := core.PackManifest{
			Slug: core.Slugify(name),
			Meta: core.PackMeta{
				Name:        name,
				Version:     "1.0.0",
				Description: description,
				Authors:     splitAuthors(authors),
				License:     license,
			},
			Versions: core.PackVersions{
				Minecraft: mcVersion,
				Fabric:    fabricVersion,
			},
		}
		if err := core.InitPack(dir, manifest); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Successfully initialised pack in %s\n", filepath.Clean(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("name", "", "The name of the modpack (omit to define interactively)")
	_ = viper.BindPFlag("init.name", initCmd.Flags().Lookup("name"))
	initCmd.Flags().String("authors", "", "Comma-separated authors of the modpack (omit to define interactively)")
	_ = viper.BindPFlag("init.authors", initCmd.Flags().Lookup("authors"))
	initCmd.Flags().String("description", "", "The description of the modpack (omit to define interactively)")
	_ = viper.BindPFlag("init.description", initCmd.Flags().Lookup("description"))
	initCmd.Flags().String("license", "", "The SPDX license id of the modpack (omit to define interactively)")
	_ = viper.BindPFlag("init.license", initCmd.Flags().Lookup("license"))
	initCmd.Flags().String("minecraft", "", "The Minecraft version to use (omit to define interactively)")
	_ = viper.BindPFlag("init.minecraft", initCmd.Flags().Lookup("minecraft"))
	initCmd.Flags().String("fabric", "", "The Fabric loader version to use (default is the latest)")
	_ = viper.BindPFlag("init.fabric", initCmd.Flags().Lookup("fabric"))
}

// defaultPackName turns a directory name into a space-separated proper name
func defaultPackName(dir string) string {
	directoryName := filepath.Base(dir)
	if directoryName == "." || directoryName == string(filepath.Separator) || len(directoryName) == 0 {
		return ""
	}
	return titlecase.Title(strings.ReplaceAll(strings.ReplaceAll(strings.Join(camelcase.Split(directoryName), " "), " - ", " "), " _ ", " "))
}

func splitAuthors(authors string) []string {
	var out []string
	for _, a := range strings.Split(authors, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func initReadValue(prompt string, def string) string {
	fmt.Print(prompt)
	if viper.GetBool("non-interactive") {
		fmt.Printf("%s\n", def)
		return def
	}
	value, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Printf("Error reading input: %s\n", err)
		os.Exit(1)
	}
	// Trims both CR and LF
	value = strings.TrimSpace(strings.TrimRight(value, "\r\n"))
	if len(value) > 0 {
		return value
	}
	return def
}
