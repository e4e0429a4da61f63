package cmd

import (
	"slices"
	"testing"

	"github.com/horizr/horizr/core"
)

func TestAllowedChannels(t *testing.T) {
	tests := []struct {
		alpha, beta bool
		want        []core.ReleaseChannel
	}{
		{false, false, []core.ReleaseChannel{core.Release}},
		{true, false, []core.ReleaseChannel{core.Release, core.Alpha}},
		{false, true, []core.ReleaseChannel{core.Release, core.Beta}},
		{true, true, []core.ReleaseChannel{core.Release, core.Alpha, core.Beta}},
	}
	for _, tt := range tests {
		if got := allowedChannels(tt.alpha, tt.beta); !slices.Equal(got, tt.want) {
			t.Errorf("allowedChannels(%v, %v) = %v, want %v", tt.alpha, tt.beta, got, tt.want)
		}
	}
}

func TestDefaultPackName(t *testing.T) {
	tests := map[string]string{
		"/home/me/packs/myCoolPack": "My Cool Pack",
		"/home/me/packs/survival":   "Survival",
		"/":                         "",
	}
	for dir, want := range tests {
		if got := defaultPackName(dir); got != want {
			t.Errorf("defaultPackName(%q) = %q, want %q", dir, got, want)
		}
	}
}

func TestSplitAuthors(t *testing.T) {
	got := splitAuthors(" Alice, Bob ,, ")
	if !slices.Equal(got, []string{"Alice", "Bob"}) {
		t.Errorf("unexpected authors %v", got)
	}
	if got := splitAuthors(""); len(got) != 0 {
		t.Errorf("expected no authors, got %v", got)
	}
}

func TestListLine(t *testing.T) {
	mf := &core.MetaFile{
		SourceFile: core.SourceFile{RelPath: "client/mods/zoom.hm.json", Side: core.ClientSide},
		ID:         "zoom",
		Content: core.MetaContent{
			DisplayName:   "Zoom",
			Version:       core.FileRecord{Name: "2.0"},
			Source:        core.RawSource{},
			IgnoreUpdates: true,
		},
	}
	want := "Zoom 2.0 (client) [disabled, pinned, raw]"
	if got := listLine(mf); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	mf.Content.Enabled = true
	mf.Content.IgnoreUpdates = false
	mf.Content.Source = core.ModrinthSource{ModID: "AAAA", VersionID: "BBBB"}
	if got := listLine(mf); got != "Zoom 2.0 (client)" {
		t.Errorf("unexpected line %q", got)
	}
}
