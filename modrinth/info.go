package modrinth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/horizr/horizr/cmd"
	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Show Modrinth mods",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show Modrinth mod versions",
}

// modInfoCmd represents the mod info command
var modInfoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show information about a mod",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		ctx, cancel := cmd.Context()
		defer cancel()

		mod := getModOrExit(ctx, args[0])
		fmt.Printf("%s (↓ %d)\n", mod.Title, mod.Downloads)
		fmt.Println(mod.Description)
		fmt.Println()
		fmt.Println("Client       Server")
		fmt.Printf("%-12s %s\n", mod.ClientSide, mod.ServerSide)
		if pack.FindByProject(mod.ID) != nil {
			fmt.Println()
			fmt.Println("This mod is in the pack.")
		}
		fmt.Println()
		fmt.Println(projectURL(mod.Slug))
	},
}

// modVersionsCmd represents the mod versions command
var modVersionsCmd = &cobra.Command{
	Use:   "versions <id>",
	Short: "List the versions of a mod compatible with the pack",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		ctx, cancel := cmd.Context()
		defer cancel()

		mod := getModOrExit(ctx, args[0])
		versions, err := mrRegistry.ListVersions(ctx, mod.ID, pack.Manifest.Versions.Minecraft)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if len(versions) == 0 {
			fmt.Printf("There are no versions compatible with the pack (Loader: %s, Minecraft %s).\n", loader, pack.Manifest.Versions.Minecraft)
			return
		}

		activeID := ""
		if existing := pack.FindByProject(mod.ID); existing != nil {
			activeID = existing.Content.Source.(core.ModrinthSource).VersionID
		}
		sorted := core.SortByPreference(versions)
		if limit := viper.GetInt("modrinth.versions.limit"); limit > 0 && limit < len(sorted) {
			sorted = sorted[:limit]
		}
		blocks := make([]string, 0, len(sorted))
		for _, v := range sorted {
			blocks = append(blocks, versionListEntry(v, v.ID == activeID))
		}
		fmt.Println(strings.Join(blocks, "\n\n"))
	},
}

func versionListEntry(v core.CatalogVersion, active bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (↓ %d)\n", v.ID, v.VersionString, v.Downloads)
	if active {
		b.WriteString("active\n\n")
	} else if v.Featured {
		b.WriteString("featured\n\n")
	}
	if v.Name != v.VersionString {
		fmt.Fprintf(&b, "Name: %s\n", v.Name)
	}
	fmt.Fprintf(&b, "Channel: %s\n", v.ReleaseChannel)
	fmt.Fprintf(&b, "Minecraft versions: %s\n\n", strings.Join(v.GameVersions, ", "))
	fmt.Fprintf(&b, "Published: %s\n\n", v.Published.Format("2006-01-02"))
	b.WriteString(versionURL(v.ProjectID, v.ID))
	return b.String()
}

// versionInfoCmd represents the version info command
var versionInfoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show information about a mod version",
	Args:  cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		ctx, cancel := cmd.Context()
		defer cancel()

		version, err := mrRegistry.GetVersion(ctx, args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if version == nil {
			fmt.Printf("Version %s not found.\n", args[0])
			os.Exit(1)
		}
		mod := getModOrExit(ctx, version.ProjectID)

		fmt.Printf("%s %s (%s)\n", mod.Title, version.VersionString, version.ReleaseChannel)
		fmt.Println(versionState(version, pack.FindByProject(mod.ID), pack))
		fmt.Println()
		fmt.Printf("Version name: %s (%s)\n", version.Name, version.Published.Format("2006-01-02"))
		fmt.Printf("Minecraft versions: %s\n", strings.Join(version.GameVersions, ", "))
		fmt.Printf("Loaders: %s\n", strings.Join(version.Loaders, ", "))
		fmt.Println()
		fmt.Println("Related mods:")
		lines, err := relationLines(ctx, mrRegistry, version.Relations)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if len(lines) == 0 {
			fmt.Println("none")
		}
		for _, line := range lines {
			fmt.Println(line)
		}
		fmt.Println()
		fmt.Println(versionURL(mod.Slug, version.VersionString))
	},
}

// versionState describes how version relates to the pack
func versionState(version *core.CatalogVersion, existing *core.MetaFile, pack *core.Pack) string {
	if existing == nil {
		if isCompatible(version, pack) {
			return "compatible"
		}
		return "incompatible"
	}
	if src, ok := existing.Content.Source.(core.ModrinthSource); ok && src.VersionID == version.ID {
		return "active"
	}

	current := existing.Content.Version.Name
	active, okActive := core.ParseSemver(current)
	proposed, okProposed := core.ParseSemver(version.VersionString)
	switch {
	case !okActive || !okProposed:
		return "different version active -> " + current
	case proposed.GreaterThan(active):
		return "older version active -> " + current
	case proposed.LessThan(active):
		return "newer version active -> " + current
	}
	return "active"
}

var relationFallbacks = map[core.RelationType]string{
	core.EmbeddedDependency: "unknown version",
	core.SoftDependency:     "any version",
	core.HardDependency:     "any version",
	core.Incompatible:       "all versions",
}

// relationLines describes each relation with the title of the related mod and version
func relationLines(ctx context.Context, registry *Registry, relations []core.Relation) ([]string, error) {
	lines := make([]string, 0, len(relations))
	for _, rel := range relations {
		versionLabel := relationFallbacks[rel.Type]
		projectID := rel.ProjectID
		if rel.VersionID != "" {
			v, err := registry.GetVersion(ctx, rel.VersionID)
			if err != nil {
				return nil, err
			}
			if v != nil {
				versionLabel = v.VersionString + " (" + v.ID + ")"
				if projectID == "" {
					projectID = v.ProjectID
				}
			}
		}

		title := projectID
		if projectID != "" {
			mod, err := registry.GetMod(ctx, projectID)
			if err != nil {
				return nil, err
			}
			if mod != nil {
				title = mod.Title + " (" + projectID + ")"
			}
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s: %s", strings.TrimSuffix(string(rel.Type), "_dependency"), title, versionLabel))
	}
	return lines, nil
}

func getModOrExit(ctx context.Context, idOrSlug string) *core.CatalogMod {
	mod, err := mrRegistry.GetMod(ctx, idOrSlug)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if mod == nil {
		fmt.Printf("Mod %s not found.\n", idOrSlug)
		os.Exit(1)
	}
	return mod
}

func versionURL(project string, version string) string {
	return projectURL(project) + "/version/" + version
}

func init() {
	modrinthCmd.AddCommand(modCmd)
	modrinthCmd.AddCommand(versionCmd)
	modCmd.AddCommand(modInfoCmd)
	modCmd.AddCommand(modVersionsCmd)
	versionCmd.AddCommand(versionInfoCmd)

	modVersionsCmd.Flags().IntP("limit", "l", 3, "Maximum number of versions to show")
	_ = viper.BindPFlag("modrinth.versions.limit", modVersionsCmd.Flags().Lookup("limit"))
}
