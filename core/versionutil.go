package core

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/unascribed/FlexVer/go/flexver"
)

type MavenMetadata struct {
	XMLName    xml.Name `xml:"metadata"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Versioning struct {
		Release  string `xml:"release"`
		Latest   string `xml:"latest"`
		Versions struct {
			Version []string `xml:"version"`
		} `xml:"versions"`
		LastUpdated string `xml:"lastUpdated"`
	} `xml:"versioning"`
}

// FabricLoaderMetadataURL lists every published Fabric loader version
const FabricLoaderMetadataURL = "https://maven.fabricmc.net/net/fabricmc/fabric-loader/maven-metadata.xml"

// FetchMavenVersionList returns every version in the maven metadata at url and the version marked as release
func FetchMavenVersionList(url string) ([]string, string, error) {
	res, err := GetWithUA(url, "application/xml")
	if err != nil {
		return nil, "", err
	}
	defer res.Body.Close()

	out := MavenMetadata{}
	if err := xml.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("failed to decode maven metadata from %s: %w", url, err)
	}
	return out.Versioning.Versions.Version, out.Versioning.Release, nil
}

// LatestFabricLoader returns the newest Fabric loader version.
// The loader is independent of the Minecraft version, so no filtering takes place.
func LatestFabricLoader() (string, error) {
	versions, release, err := FetchMavenVersionList(FabricLoaderMetadataURL)
	if err != nil {
		return "", err
	}
	return PickLatest(versions, release)
}

// PickLatest returns release if maven marks one, otherwise the largest version of the list
func PickLatest(versions []string, release string) (string, error) {
	if release != "" {
		return release, nil
	}
	if len(versions) == 0 {
		return "", errors.New("no versions available")
	}
	sorted := append([]string(nil), versions...)
	flexver.VersionSlice(sorted).Sort()
	return sorted[len(sorted)-1], nil
}
