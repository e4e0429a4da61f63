package modrinth

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/horizr/horizr/cmd"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
)

var modrinthCmd = &cobra.Command{
	Use:     "modrinth",
	Aliases: []string{"mr"},
	Short:   "Find, activate and export Modrinth mods",
	Long: `Find, activate and export Modrinth mods.

<code> may be one of the following:
- URL or slug of a Modrinth mod (https://modrinth.com/mod/sodium or sodium)
- URL of a Modrinth mod version (https://modrinth.com/mod/sodium/version/mc1.19-0.4.2)
- slug of a Modrinth mod and a version with a @ in between (sodium@mc1.19-0.4.2)
- Modrinth project ID (AANobbMI for Sodium)
- Modrinth version ID, prefixed with @ (@Yp8wLY1P for Sodium mc1.19-0.4.2)`,
}

// mrRegistry serves every Modrinth request of a horizr process
var mrRegistry = NewRegistry(NewClient())

func init() {
	cmd.Add(modrinthCmd)
}

// ModCode is a parsed reference to a Modrinth mod and optionally one of its versions
type ModCode struct {
	// Slug is the slug or project id, empty when only VersionID is known
	Slug string
	// VersionString is the version number to look for, if given
	VersionString string
	// VersionID is set for @<id> codes
	VersionID string
}

var modURLRegex = regexp2.MustCompile(`^https://modrinth\.com/mod/(?<slug>[^/?#]+)(?:/version/(?<version>[^/?#]+))?/?$`, regexp2.None)

// ParseCode parses the code forms accepted by modrinth commands
func ParseCode(code string) (ModCode, error) {
	if code == "" {
		return ModCode{}, errors.New("the code is empty")
	}

	if id, ok := strings.CutPrefix(code, "@"); ok {
		if id == "" || strings.Contains(id, "@") {
			return ModCode{}, fmt.Errorf("invalid code: %s", code)
		}
		return ModCode{VersionID: id}, nil
	}

	if strings.HasPrefix(code, "https://") || strings.HasPrefix(code, "http://") {
		match, err := modURLRegex.FindStringMatch(code)
		if err != nil {
			return ModCode{}, err
		}
		if match == nil {
			return ModCode{}, errors.New("only Modrinth mod and version URLs are supported")
		}
		parsed := ModCode{Slug: match.GroupByName("slug").String()}
		if version := match.GroupByName("version"); version != nil && len(version.Captures) > 0 {
			parsed.VersionString = version.String()
		}
		return parsed, nil
	}

	parts := strings.Split(code, "@")
	switch {
	case len(parts) == 1:
		return ModCode{Slug: code}, nil
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return ModCode{Slug: parts[0], VersionString: parts[1]}, nil
	}
	return ModCode{}, fmt.Errorf("invalid code: %s", code)
}

// getSide returns the pack side a mod belongs to from its client and server support
func getSide(mod *core.CatalogMod) core.Side {
	client := mod.ClientSide != "unsupported"
	server := mod.ServerSide != "unsupported"
	if client && server {
		return core.UniversalSide
	} else if client {
		return core.ClientSide
	}
	return core.ServerSide
}

// isCompatible reports whether version can be used in pack
func isCompatible(version *core.CatalogVersion, pack *core.Pack) bool {
	return slices.Contains(version.GameVersions, pack.Manifest.Versions.Minecraft) && slices.Contains(version.Loaders, loader)
}

// projectURL links to the Modrinth page of a mod
func projectURL(slugOrID string) string {
	return "https://modrinth.com/mod/" + slugOrID
}
