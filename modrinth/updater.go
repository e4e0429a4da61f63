package modrinth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/horizr/horizr/core"
	"github.com/unascribed/FlexVer/go/flexver"
)

var _ core.Updater = (*Registry)(nil)

func init() {
	core.Updaters[core.ModrinthSource{}.SourceType()] = mrRegistry
}

// errNoCompatibleVersion is returned when a mod has no version for the pack's Minecraft version and loader
var errNoCompatibleVersion = errors.New("there is no version compatible with the pack")

// preferredVersion returns the version of a mod that activation picks when none is given:
// the first one by channel stability, featured flag and publication date.
func preferredVersion(ctx context.Context, registry *Registry, mod *core.CatalogMod, gameVersion string) (*core.CatalogVersion, error) {
	versions, err := registry.ListVersions(ctx, mod.ID, gameVersion)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, errNoCompatibleVersion
	}

	sorted := core.SortByPreference(versions)
	preferred := sorted[0]

	// Authors sometimes publish versions out of order
	highest := sorted[0]
	for _, v := range sorted[1:] {
		if flexver.Compare(v.VersionString, highest.VersionString) > 0 {
			highest = v
		}
	}
	if highest.ID != preferred.ID && highest.ReleaseChannel == preferred.ReleaseChannel {
		log.Warn(fmt.Sprintf("Modrinth versions for %s inconsistent between latest version number and newest release date", mod.Title),
			"number", highest.VersionString, "date", preferred.VersionString)
	}
	return &preferred, nil
}
