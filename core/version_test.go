package core

import (
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
)

func day(d int) time.Time {
	return time.Date(2024, time.February, d, 0, 0, 0, 0, time.UTC)
}

func labels(versions []CatalogVersion) []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.VersionString
	}
	return out
}

func TestNewerVersionsFollowsSemverOrder(t *testing.T) {
	all := []string{"0.9.0", "1.0.0-alpha.1", "1.0.0-beta", "1.0.0", "1.0.1", "1.2.0", "1.10.0", "2.0.0-rc.1", "2.0.0"}
	for _, active := range all {
		for _, candidate := range all {
			newer := NewerVersions(active, "", []CatalogVersion{{ID: "x", VersionString: candidate}})
			expected := semver.MustParse(candidate).Compare(semver.MustParse(active)) > 0
			if (len(newer) == 1) != expected {
				t.Errorf("newer(%s over %s) = %v, expected %v", candidate, active, len(newer) == 1, expected)
			}
		}
	}
}

func TestNewerVersionsIgnoresNonSemverCandidates(t *testing.T) {
	candidates := []CatalogVersion{
		{ID: "a", VersionString: "mc1.19-0.5.0", Published: day(20)},
		{ID: "b", VersionString: "1.3.0", Published: day(1)},
	}
	newer := NewerVersions("1.2.0", "", candidates)
	if len(newer) != 1 || newer[0].ID != "b" {
		t.Errorf("expected only the semantic candidate, got %v", labels(newer))
	}
}

func TestNewerVersionsUsesPublicationDateBaseline(t *testing.T) {
	candidates := []CatalogVersion{
		{ID: "old", VersionString: "build5", Published: day(1)},
		{ID: "active", VersionString: "build7", Published: day(5)},
		{ID: "same", VersionString: "build7b", Published: day(5)},
		{ID: "new", VersionString: "build9", Published: day(9)},
	}
	newer := NewerVersions("build7", "active", candidates)
	if len(newer) != 1 || newer[0].ID != "new" {
		t.Errorf("expected only build9 to be newer, got %v", labels(newer))
	}
}

func TestNewerVersionsWithoutBaselineReturnsAll(t *testing.T) {
	candidates := []CatalogVersion{
		{ID: "a", VersionString: "build5", Published: day(1)},
		{ID: "b", VersionString: "build3", Published: day(3)},
	}
	newer := NewerVersions("mc1.19-build7", "unknown", candidates)
	if len(newer) != 2 {
		t.Errorf("expected every candidate to be newer, got %v", labels(newer))
	}
}

func TestRecommendRespectsAllowedChannels(t *testing.T) {
	candidates := []CatalogVersion{
		{ID: "r", VersionString: "1.3.0", ReleaseChannel: Release, Published: day(1)},
		{ID: "b", VersionString: "1.3.0-beta", ReleaseChannel: Beta, Published: day(5)},
	}
	best := Recommend("1.2.0", "", candidates, []ReleaseChannel{Release})
	if best == nil || best.VersionString != "1.3.0" {
		t.Fatalf("expected 1.3.0, got %v", best)
	}

	candidates = []CatalogVersion{
		{ID: "a", VersionString: "2.0.0-alpha", ReleaseChannel: Alpha, Published: day(9)},
		{ID: "b", VersionString: "1.5.0-beta", ReleaseChannel: Beta, Published: day(8)},
	}
	if best := Recommend("1.2.0", "", candidates, []ReleaseChannel{Release}); best != nil {
		t.Errorf("expected no update outside the allowed channels, got %s", best.VersionString)
	}
	best = Recommend("1.2.0", "", candidates, []ReleaseChannel{Release, Beta})
	if best == nil || best.ReleaseChannel != Beta {
		t.Errorf("expected the beta version, got %v", best)
	}
}

func TestRecommendNonSemverSortsByPreference(t *testing.T) {
	candidates := []CatalogVersion{
		{ID: "1", VersionString: "beta-late", ReleaseChannel: Beta, Published: day(9)},
		{ID: "2", VersionString: "release-early", ReleaseChannel: Release, Published: day(1)},
		{ID: "3", VersionString: "release-featured", ReleaseChannel: Release, Featured: true, Published: day(2)},
		{ID: "4", VersionString: "release-late", ReleaseChannel: Release, Published: day(4)},
		{ID: "5", VersionString: "alpha", ReleaseChannel: Alpha, Published: day(10)},
	}
	all := []ReleaseChannel{Alpha, Beta, Release}

	sorted := SortByPreference(NewerVersions("mc1.19-build7", "", candidates))
	expected := []string{"release-featured", "release-late", "release-early", "beta-late", "alpha"}
	got := labels(sorted)
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected order %v, got %v", expected, got)
		}
	}

	best := Recommend("mc1.19-build7", "", candidates, all)
	if best == nil || best.VersionString != "release-featured" {
		t.Errorf("expected release-featured, got %v", best)
	}
}

func TestSortByPreferenceIsStable(t *testing.T) {
	candidates := []CatalogVersion{
		{ID: "first", ReleaseChannel: Release, Published: day(3)},
		{ID: "second", ReleaseChannel: Release, Published: day(3)},
	}
	if sorted := SortByPreference(candidates); sorted[0].ID != "first" {
		t.Errorf("expected ties to keep their order, got %s first", sorted[0].ID)
	}
	if candidates[0].ID != "first" {
		t.Error("SortByPreference must not reorder its input")
	}
}

func TestRecommendSemanticEqualityIsNoUpdate(t *testing.T) {
	candidates := []CatalogVersion{
		{ID: "reissued", VersionString: "v1.2.0", ReleaseChannel: Release, Published: day(9)},
	}
	if best := Recommend("1.2.0", "original", candidates, []ReleaseChannel{Release}); best != nil {
		t.Errorf("expected no update for an equal label, got %s", best.VersionString)
	}
}

func TestSelectPrimaryFile(t *testing.T) {
	files := []CatalogFile{
		{FileName: "mod-sources.jar"},
		{FileName: "mod.jar"},
	}
	if f, _ := SelectPrimaryFile(files); f.FileName != "mod.jar" {
		t.Errorf("expected the shorter file name, got %s", f.FileName)
	}

	files[0].Primary = true
	if f, _ := SelectPrimaryFile(files); f.FileName != "mod-sources.jar" {
		t.Errorf("expected the primary file, got %s", f.FileName)
	}

	if _, ok := SelectPrimaryFile(nil); ok {
		t.Error("expected no file to be selected from an empty list")
	}
}

func TestFileRecordFor(t *testing.T) {
	record, err := FileRecordFor(CatalogVersion{
		ID:            "abc",
		VersionString: "1.3.0",
		Files: []CatalogFile{
			{FileName: "mod-1.3.0-dev.jar", URL: "https://cdn.example.com/dev.jar"},
			{FileName: "mod-1.3.0.jar", URL: "https://cdn.example.com/mod.jar", Size: 42,
				Hashes: map[string]string{"sha1": "s1", "sha512": "s512"}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if record.Name != "1.3.0" || record.FileName != "mod-1.3.0.jar" || record.DownloadURL != "https://cdn.example.com/mod.jar" {
		t.Errorf("unexpected record %+v", record)
	}
	if record.Hashes.SHA1 != "s1" || record.Hashes.SHA512 != "s512" || record.Size == nil || *record.Size != 42 {
		t.Errorf("unexpected hashes or size in %+v", record)
	}

	if _, err := FileRecordFor(CatalogVersion{ID: "empty"}); err == nil {
		t.Error("expected an error for a version without files")
	}
}
