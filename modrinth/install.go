package modrinth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/horizr/horizr/cmd"
	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sideFlag cmdshared.SideValue

// activateCmd represents the activate command
var activateCmd = &cobra.Command{
	Use:     "activate <code>",
	Short:   "Activate a Modrinth mod in the pack",
	Long:    "Activate a Modrinth mod in the pack. Without a version the recommended compatible version is used.",
	Aliases: []string{"a", "add", "install"},
	Args:    cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		ctx, cancel := cmd.Context()
		defer cancel()

		code, err := ParseCode(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		mod, version, err := resolveActivation(ctx, mrRegistry, pack, code)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		side := getSide(mod)
		if sideFlag.IsSet() {
			if !supportsSide(mod, sideFlag.Side) {
				fmt.Printf("%s is incompatible with the %s side (client: %s, server: %s).\n", mod.Title, sideFlag.Side, mod.ClientSide, mod.ServerSide)
				os.Exit(1)
			}
			side = sideFlag.Side
		}

		if existing := pack.FindByProject(mod.ID); existing != nil {
			replaceExisting(pack, existing, mod, version)
		} else {
			if !viper.GetBool("modrinth.activate.yes") &&
				!cmdshared.PromptYesNo(fmt.Sprintf("Activate %s %s (%s)?", mod.Title, version.VersionString, side), true) {
				return
			}
			mf, err := activate(pack, side, mod, version)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Printf("%s (%s) was successfully activated as %s.\n", mod.Title, version.VersionString, mf.RelPath)
		}

		printDependencies(ctx, pack, version)
	},
}

func replaceExisting(pack *core.Pack, existing *core.MetaFile, mod *core.CatalogMod, version *core.CatalogVersion) {
	src := existing.Content.Source.(core.ModrinthSource)
	if src.VersionID == version.ID {
		fmt.Println("This version is already active.")
		os.Exit(0)
	}
	if !viper.GetBool("modrinth.activate.force") {
		fmt.Printf("A different version of %s is already active (%s).\n", mod.Title, existing.Content.Version.Name)
		fmt.Println("Run this command again with --force to change the version.")
		os.Exit(1)
	}

	oldVersion := existing.Content.Version.Name
	if err := setVersion(existing, version); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("Successfully replaced version %s of %s with %s.\n", oldVersion, mod.Title, version.VersionString)
}

// resolveActivation finds the mod and version a code refers to.
// Without a version in the code the preferred compatible version is used, explicit versions must be compatible.
func resolveActivation(ctx context.Context, registry *Registry, pack *core.Pack, code ModCode) (*core.CatalogMod, *core.CatalogVersion, error) {
	var version *core.CatalogVersion
	var err error

	if code.VersionID != "" {
		version, err = registry.GetVersion(ctx, code.VersionID)
		if err != nil {
			return nil, nil, err
		}
		if version == nil {
			return nil, nil, fmt.Errorf("version %s not found", code.VersionID)
		}
		code.Slug = version.ProjectID
	}

	mod, err := registry.GetMod(ctx, code.Slug)
	if err != nil {
		return nil, nil, err
	}
	if mod == nil {
		return nil, nil, fmt.Errorf("mod %s not found", code.Slug)
	}

	if version == nil && code.VersionString == "" {
		version, err = preferredVersion(ctx, registry, mod, pack.Manifest.Versions.Minecraft)
		if errors.Is(err, errNoCompatibleVersion) {
			return nil, nil, fmt.Errorf("%s: %w (Loader: %s, Minecraft %s)", mod.Title, err, loader, pack.Manifest.Versions.Minecraft)
		}
		if err != nil {
			return nil, nil, err
		}
		return mod, version, nil
	}

	if version == nil {
		versions, err := registry.ListVersions(ctx, mod.ID, "")
		if err != nil {
			return nil, nil, err
		}
		for i := range versions {
			if versions[i].VersionString == code.VersionString || versions[i].ID == code.VersionString {
				version = &versions[i]
				break
			}
		}
		if version == nil {
			return nil, nil, fmt.Errorf("version %s of %s not found", code.VersionString, mod.Title)
		}
	}

	if !isCompatible(version, pack) {
		return nil, nil, fmt.Errorf("%s %s is not compatible with the pack (Loader: %s, Minecraft %s)",
			mod.Title, version.VersionString, loader, pack.Manifest.Versions.Minecraft)
	}
	return mod, version, nil
}

// supportsSide reports whether mod can run on side
func supportsSide(mod *core.CatalogMod, side core.Side) bool {
	client := mod.ClientSide != "unsupported"
	server := mod.ServerSide != "unsupported"
	switch side {
	case core.ClientSide:
		return client
	case core.ServerSide:
		return server
	}
	return client && server
}

// activate writes a new entry for version below side/mods. The id is the slug, suffixed when it is taken.
func activate(pack *core.Pack, side core.Side, mod *core.CatalogMod, version *core.CatalogVersion) (*core.MetaFile, error) {
	record, err := core.FileRecordFor(*version)
	if err != nil {
		return nil, err
	}
	base := mod.Slug
	if base == "" {
		base = core.Slugify(mod.Title)
	}
	return pack.AddMetaFile(side, pack.FreeID(base), core.MetaContent{
		DisplayName: mod.Title,
		Enabled:     true,
		Version:     record,
		Source:      core.ModrinthSource{ModID: mod.ID, VersionID: version.ID},
	})
}

func setVersion(mf *core.MetaFile, version *core.CatalogVersion) error {
	record, err := core.FileRecordFor(*version)
	if err != nil {
		return err
	}
	mf.Content.Version = record
	mf.Content.Source = core.ModrinthSource{ModID: version.ProjectID, VersionID: version.ID}
	return mf.Save()
}

// unmetDependencies returns the hard dependencies of version that have no entry in pack
func unmetDependencies(ctx context.Context, registry *Registry, pack *core.Pack, version *core.CatalogVersion) ([]core.Relation, error) {
	var unmet []core.Relation
	for _, rel := range version.Relations {
		if rel.Type != core.HardDependency {
			continue
		}
		projectID := rel.ProjectID
		if projectID == "" && rel.VersionID != "" {
			v, err := registry.GetVersion(ctx, rel.VersionID)
			if err != nil {
				return nil, err
			}
			if v != nil {
				projectID = v.ProjectID
			}
		}
		if projectID == "" || pack.FindByProject(projectID) == nil {
			unmet = append(unmet, rel)
		}
	}
	return unmet, nil
}

func printDependencies(ctx context.Context, pack *core.Pack, version *core.CatalogVersion) {
	var deps []core.Relation
	for _, rel := range version.Relations {
		if rel.Type == core.HardDependency || rel.Type == core.SoftDependency {
			deps = append(deps, rel)
		}
	}
	if len(deps) == 0 {
		return
	}

	lines, err := relationLines(ctx, mrRegistry, deps)
	if err != nil {
		log.Warn("Failed to fetch dependency information", "err", err)
		return
	}
	fmt.Println()
	fmt.Println("Dependencies")
	for _, line := range lines {
		fmt.Println(line)
	}

	unmet, err := unmetDependencies(ctx, mrRegistry, pack, version)
	if err != nil {
		log.Warn("Failed to check dependencies", "err", err)
		return
	}
	for _, rel := range unmet {
		log.Warn("Unmet dependency", "project", rel.ProjectID, "version", rel.VersionID)
	}
}

func init() {
	modrinthCmd.AddCommand(activateCmd)

	activateCmd.Flags().Var(&sideFlag, "side", "Override the side of the mod, "+cmdshared.SideNames)
	activateCmd.Flags().BoolP("force", "f", false, "Replace a different version that is already active")
	_ = viper.BindPFlag("modrinth.activate.force", activateCmd.Flags().Lookup("force"))
	activateCmd.Flags().BoolP("yes", "y", false, "Activate without asking")
	_ = viper.BindPFlag("modrinth.activate.yes", activateCmd.Flags().Lookup("yes"))
}
