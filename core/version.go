package core

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
)

// ReleaseChannel is the stability tier of a published version
type ReleaseChannel string

const (
	Alpha   ReleaseChannel = "alpha"
	Beta    ReleaseChannel = "beta"
	Release ReleaseChannel = "release"
)

// ReleaseChannelOrder orders channels from least to most stable.
// It is used both for filtering and for preferring stable versions.
var ReleaseChannelOrder = []ReleaseChannel{Alpha, Beta, Release}

// Rank returns the position of c in ReleaseChannelOrder, or -1 for unknown channels
func (c ReleaseChannel) Rank() int {
	return slices.Index(ReleaseChannelOrder, c)
}

type RelationType string

const (
	HardDependency     RelationType = "hard_dependency"
	SoftDependency     RelationType = "soft_dependency"
	EmbeddedDependency RelationType = "embedded_dependency"
	Incompatible       RelationType = "incompatible"
)

// Relation links a version to another project or version. At least one of the ids is set.
type Relation struct {
	Type      RelationType
	ProjectID string
	VersionID string
}

// CatalogFile is one downloadable artifact of a CatalogVersion
type CatalogFile struct {
	Primary  bool
	Hashes   map[string]string
	FileName string
	URL      string
	Size     int64
}

// CatalogVersion is a version of a project as published in the registry
type CatalogVersion struct {
	ID             string
	ProjectID      string
	Name           string
	VersionString  string
	ReleaseChannel ReleaseChannel
	Featured       bool
	Published      time.Time
	Changelog      string
	GameVersions   []string
	Loaders        []string
	Downloads      int
	Relations      []Relation
	Files          []CatalogFile
}

// CatalogMod is a project as published in the registry
type CatalogMod struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Categories  []string
	ClientSide  string
	ServerSide  string
	Downloads   int
}

// ParseSemver parses label as a strict semantic version. A leading "v" is allowed.
func ParseSemver(label string) (*semver.Version, bool) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(label), "v"))
	if err != nil {
		return nil, false
	}
	return v, true
}

// NewerVersions returns the candidates that are newer than the active version.
//
// If the active label is a semantic version, a candidate is newer when its own label is a semantic version
// that compares greater. Candidates with other labels are never newer.
// Otherwise the publication date of the candidate with id activeVersionID is the baseline and later
// candidates are newer. Without a baseline every candidate is newer.
func NewerVersions(activeLabel string, activeVersionID string, candidates []CatalogVersion) []CatalogVersion {
	if active, ok := ParseSemver(activeLabel); ok {
		return filterVersions(candidates, func(v CatalogVersion) bool {
			candidate, ok := ParseSemver(v.VersionString)
			return ok && candidate.GreaterThan(active)
		})
	}

	idx := slices.IndexFunc(candidates, func(v CatalogVersion) bool { return v.ID == activeVersionID })
	if idx < 0 {
		return slices.Clone(candidates)
	}
	baseline := candidates[idx].Published
	return filterVersions(candidates, func(v CatalogVersion) bool {
		return v.Published.After(baseline)
	})
}

// FilterChannels keeps the versions published in one of the allowed channels
func FilterChannels(versions []CatalogVersion, allowed []ReleaseChannel) []CatalogVersion {
	return filterVersions(versions, func(v CatalogVersion) bool {
		return slices.Contains(allowed, v.ReleaseChannel)
	})
}

// SortByPreference returns a copy of versions ordered from most to least preferable:
// by release channel, then featured versions first, then newest first. The sort is stable.
func SortByPreference(versions []CatalogVersion) []CatalogVersion {
	sorted := slices.Clone(versions)
	slices.SortStableFunc(sorted, func(a, b CatalogVersion) int {
		if c := cmp.Compare(b.ReleaseChannel.Rank(), a.ReleaseChannel.Rank()); c != 0 {
			return c
		}
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return b.Published.Compare(a.Published)
	})
	return sorted
}

// Recommend picks the best newer version in the allowed channels, or nil if there is none.
// A candidate whose label is semantically equal to the active label is not an update.
func Recommend(activeLabel string, activeVersionID string, candidates []CatalogVersion, allowed []ReleaseChannel) *CatalogVersion {
	newer := FilterChannels(NewerVersions(activeLabel, activeVersionID, candidates), allowed)
	if len(newer) == 0 {
		return nil
	}
	best := SortByPreference(newer)[0]

	if active, ok := ParseSemver(activeLabel); ok {
		if proposed, ok := ParseSemver(best.VersionString); ok && proposed.Equal(active) {
			return nil
		}
	}
	return &best
}

// SelectPrimaryFile returns the file flagged as primary or, if none is, the one with the shortest name.
// Source and documentation jars conventionally carry longer names.
func SelectPrimaryFile(files []CatalogFile) (CatalogFile, bool) {
	if len(files) == 0 {
		return CatalogFile{}, false
	}
	for _, f := range files {
		if f.Primary {
			return f, true
		}
	}
	best := files[0]
	for _, f := range files[1:] {
		if utf8.RuneCountInString(f.FileName) < utf8.RuneCountInString(best.FileName) {
			best = f
		}
	}
	return best, true
}

// FileRecordFor builds the file record of a mod entry for version
func FileRecordFor(version CatalogVersion) (FileRecord, error) {
	file, ok := SelectPrimaryFile(version.Files)
	if !ok {
		return FileRecord{}, fmt.Errorf("version %s has no files", version.ID)
	}
	size := file.Size
	return FileRecord{
		Name:        version.VersionString,
		Size:        &size,
		FileName:    file.FileName,
		DownloadURL: file.URL,
		Hashes: FileHashes{
			SHA1:   file.Hashes["sha1"],
			SHA512: file.Hashes["sha512"],
		},
	}, nil
}

func filterVersions(versions []CatalogVersion, keep func(CatalogVersion) bool) []CatalogVersion {
	out := make([]CatalogVersion, 0, len(versions))
	for _, v := range versions {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
