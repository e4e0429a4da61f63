package cmdshared

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/horizr/horizr/core"
)

// McVersionManifestURL lists every released Minecraft version
const McVersionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

type McVersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []struct {
		ID          string    `json:"id"`
		Type        string    `json:"type"`
		URL         string    `json:"url"`
		Time        time.Time `json:"time"`
		ReleaseTime time.Time `json:"releaseTime"`
	} `json:"versions"`
}

// CheckValid fails if version is not a known Minecraft version
func (m McVersionManifest) CheckValid(version string) error {
	for _, v := range m.Versions {
		if v.ID == version {
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid Minecraft version", version)
}

func GetValidMCVersions() (McVersionManifest, error) {
	res, err := core.GetWithUA(McVersionManifestURL, "application/json")
	if err != nil {
		return McVersionManifest{}, err
	}
	defer res.Body.Close()

	out := McVersionManifest{}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return McVersionManifest{}, fmt.Errorf("failed to decode the Minecraft version manifest: %w", err)
	}
	// Sort by newest to oldest
	sort.Slice(out.Versions, func(i, j int) bool {
		return out.Versions[i].ReleaseTime.After(out.Versions[j].ReleaseTime)
	})
	return out, nil
}
