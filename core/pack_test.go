package core

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPackFindsRootFromSubdirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		ManifestFileName:                   testManifest,
		"src/client/mods/sodium.hm.json":   modrinthMeta("0.4.4", "AANobbMI", "v1"),
		"src/universal/config/sodium.json": "{}",
	})
	pack, err := LoadPack(filepath.Join(root, "src", "client", "mods"))
	if err != nil {
		t.Fatal(err)
	}
	if pack.RootDir != root {
		t.Errorf("expected root %s, got %s", root, pack.RootDir)
	}
	if pack.Manifest.Meta.Name != "Test Pack" || len(pack.Manifest.Meta.Authors) != 2 {
		t.Errorf("unexpected manifest %+v", pack.Manifest)
	}
	if len(pack.MetaFiles) != 1 || len(pack.StaticFiles) != 1 {
		t.Fatalf("expected 1 meta file and 1 static file, got %d and %d", len(pack.MetaFiles), len(pack.StaticFiles))
	}
}

func TestLoadPackWithoutManifest(t *testing.T) {
	_, err := LoadPack(t.TempDir())
	if !errors.Is(err, ErrPackNotFound) {
		t.Errorf("expected ErrPackNotFound, got %v", err)
	}
}

func TestLoadPackUnsupportedFormat(t *testing.T) {
	root := writeTree(t, map[string]string{
		ManifestFileName: strings.Replace(testManifest, `"formatVersion": 1`, `"formatVersion": 2`, 1),
	})
	_, err := LoadPack(root)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadPackReportsEveryInvalidField(t *testing.T) {
	root := writeTree(t, map[string]string{
		ManifestFileName: `{
  "formatVersion": 1,
  "slug": "x",
  "meta": {"version": "1.0.0", "authors": []},
  "versions": {"minecraft": "1.19.2"}
}`,
	})
	_, err := LoadPack(root)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, expected := range []string{"meta/name", "meta/authors", "meta/license", "versions/fabric"} {
		if !fields[expected] {
			t.Errorf("expected an issue for %s, got %v", expected, validationErr.Issues)
		}
	}
	if !strings.Contains(err.Error(), ManifestFileName) {
		t.Errorf("expected the error to name the file: %s", err)
	}
}

func TestMetaFileDefaults(t *testing.T) {
	pack := loadTestPack(t, map[string]string{
		"src/server/mods/raw.hm.json": rawMeta,
	})
	mf := pack.MetaFiles[0]
	if !mf.Content.Enabled {
		t.Error("expected entries to be enabled by default")
	}
	if mf.Content.IgnoreUpdates {
		t.Error("expected ignoreUpdates to default to false")
	}
	if _, ok := mf.Content.Source.(RawSource); !ok {
		t.Errorf("expected a missing source to be raw, got %T", mf.Content.Source)
	}

	if err := mf.Save(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(mf.AbsPath)
	if err != nil {
		t.Fatal(err)
	}
	var saved map[string]interface{}
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatal(err)
	}
	if saved["enabled"] != true {
		t.Errorf("expected enabled to be written, got %v", saved["enabled"])
	}
	source, _ := saved["source"].(map[string]interface{})
	if source["type"] != "raw" || source["ignoreUpdates"] != false {
		t.Errorf("unexpected source %v", saved["source"])
	}
}

func TestMetaFileRoundTripKeepsSource(t *testing.T) {
	pack := loadTestPack(t, map[string]string{
		"src/client/mods/sodium.hm.json": modrinthMeta("0.4.4", "AANobbMI", "v1"),
	})
	mf := pack.MetaFiles[0]
	mf.Content.IgnoreUpdates = true
	mf.Content.Enabled = false
	if err := mf.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadPack(pack.RootDir)
	if err != nil {
		t.Fatal(err)
	}
	content := reloaded.MetaFiles[0].Content
	src, ok := content.Source.(ModrinthSource)
	if !ok || src.ModID != "AANobbMI" || src.VersionID != "v1" {
		t.Errorf("unexpected source %#v", content.Source)
	}
	if !content.IgnoreUpdates || content.Enabled {
		t.Errorf("expected flags to survive saving, got %+v", content)
	}
	if content.Version.Size == nil || *content.Version.Size != 10 {
		t.Errorf("expected size 10, got %v", content.Version.Size)
	}
}

func TestMetaFileInvalidJSON(t *testing.T) {
	root := writeTree(t, map[string]string{
		ManifestFileName:               testManifest,
		"src/client/mods/bad.hm.json": `{"version": `,
	})
	_, err := LoadPack(root)
	if err == nil || !strings.Contains(err.Error(), "client/mods/bad.hm.json") {
		t.Errorf("expected an error naming the file, got %v", err)
	}
}

func TestMetaFileValidation(t *testing.T) {
	root := writeTree(t, map[string]string{
		ManifestFileName: testManifest,
		"src/client/mods/bad.hm.json": `{
  "version": {"name": "1", "fileName": "a.jar", "downloadUrl": "not a url", "hashes": {"sha1": "a"}},
  "source": {"type": "modrinth", "modId": "abc"}
}`,
	})
	_, err := LoadPack(root)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if validationErr.Path != "client/mods/bad.hm.json" {
		t.Errorf("unexpected path %s", validationErr.Path)
	}

	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, expected := range []string{"version/downloadUrl", "version/hashes/sha512", "source/versionId"} {
		if !fields[expected] {
			t.Errorf("expected an issue for %s, got %v", expected, validationErr.Issues)
		}
	}
}

func TestSourceFilePaths(t *testing.T) {
	pack := loadTestPack(t, map[string]string{
		"src/client/mods/sodium.hm.json":          modrinthMeta("0.4.4", "AANobbMI", "v1"),
		"src/client/config/sodium-options.json":   "{}",
		"src/server/server.properties":            "motd=hi",
		"src/universal/resourcepacks/pack.hm.json": rawMeta,
		"src/loose-file.txt":                      "ignored",
	})

	mf := pack.MetaFiles[0]
	if mf.RelPath != "client/mods/sodium.hm.json" || mf.ID != "sodium" || mf.Side != ClientSide {
		t.Errorf("unexpected meta file %+v", mf.SourceFile)
	}
	if mf.EffectivePath != "mods/sodium.hm.json" || !mf.IsMod {
		t.Errorf("unexpected effective path %s (mod: %v)", mf.EffectivePath, mf.IsMod)
	}
	if pack.MetaFiles[1].IsMod {
		t.Error("a resource pack entry is not a mod")
	}
	if pack.ModCount() != 1 {
		t.Errorf("expected 1 mod, got %d", pack.ModCount())
	}

	if len(pack.StaticFiles) != 2 {
		t.Fatalf("expected 2 static files, got %d", len(pack.StaticFiles))
	}
	if sf := pack.StaticFiles[1]; sf.Side != ServerSide || sf.EffectivePath != "server.properties" {
		t.Errorf("unexpected static file %+v", sf.SourceFile)
	}
}

func TestIgnoreFileExcludesSourceFiles(t *testing.T) {
	pack := loadTestPack(t, map[string]string{
		"src/" + IgnoreFileName:           "*.bak\nuniversal/scratch/\n",
		"src/universal/config/a.json":     "{}",
		"src/universal/config/a.json.bak": "{}",
		"src/universal/scratch/notes.txt": "notes",
	})
	if len(pack.StaticFiles) != 1 || pack.StaticFiles[0].RelPath != "universal/config/a.json" {
		var paths []string
		for _, sf := range pack.StaticFiles {
			paths = append(paths, sf.RelPath)
		}
		t.Errorf("unexpected static files %v", paths)
	}
}

func TestFindByCode(t *testing.T) {
	pack := loadTestPack(t, map[string]string{
		"src/client/mods/sodium.hm.json": modrinthMeta("0.4.4", "AANobbMI", "Yp8wLY1P"),
		"src/server/mods/raw.hm.json":    rawMeta,
	})

	cases := map[string]string{
		"sodium":      "client/mods/sodium.hm.json",
		"mr:AANobbMI": "client/mods/sodium.hm.json",
		"@Yp8wLY1P":   "client/mods/sodium.hm.json",
		"raw":         "server/mods/raw.hm.json",
		filepath.Join(pack.SourceDir, "server", "mods", "raw"):           "server/mods/raw.hm.json",
		filepath.Join(pack.SourceDir, "server", "mods", "raw.hm.json"):   "server/mods/raw.hm.json",
	}
	for code, expected := range cases {
		mf := pack.FindByCode(code)
		if mf == nil {
			t.Errorf("%s: no match", code)
			continue
		}
		if mf.RelPath != expected {
			t.Errorf("%s: expected %s, got %s", code, expected, mf.RelPath)
		}
	}

	for _, code := range []string{"lithium", "mr:unknown", "@unknown", filepath.Join(t.TempDir(), "x.hm.json")} {
		if mf := pack.FindByCode(code); mf != nil {
			t.Errorf("%s: expected no match, got %s", code, mf.RelPath)
		}
	}
}

func TestAddMetaFileAndFreeID(t *testing.T) {
	pack := loadTestPack(t, map[string]string{
		"src/client/mods/sodium.hm.json": modrinthMeta("0.4.4", "AANobbMI", "v1"),
	})
	if id := pack.FreeID("lithium"); id != "lithium" {
		t.Errorf("expected an unused id to be kept, got %s", id)
	}
	id := pack.FreeID("sodium")
	if !strings.HasPrefix(id, "sodium-") || len(id) != len("sodium-")+5 {
		t.Errorf("expected a suffixed id, got %s", id)
	}

	content := pack.MetaFiles[0].Content
	mf, err := pack.AddMetaFile(UniversalSide, id, content)
	if err != nil {
		t.Fatal(err)
	}
	if mf.RelPath != "universal/mods/"+id+MetaFileExtension {
		t.Errorf("unexpected path %s", mf.RelPath)
	}
	if _, err := os.Stat(mf.AbsPath); err != nil {
		t.Errorf("expected the file to be written: %v", err)
	}
	if pack.FindByCode(id) != mf {
		t.Error("expected the new entry to be registered")
	}

	if err := pack.RemoveMetaFile(mf); err != nil {
		t.Fatal(err)
	}
	if pack.FindByCode(id) != nil {
		t.Error("expected the entry to be gone")
	}
}

func TestInitPack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new-pack")
	manifest := PackManifest{
		Slug:     "new-pack",
		Meta:     PackMeta{Name: "New Pack", Version: "1.0.0", Authors: []string{"Alice"}, License: "MIT"},
		Versions: PackVersions{Minecraft: "1.19.2", Fabric: "0.14.9"},
	}
	if err := InitPack(dir, manifest); err != nil {
		t.Fatal(err)
	}
	pack, err := LoadPack(dir)
	if err != nil {
		t.Fatal(err)
	}
	if pack.Manifest.FormatVersion != ManifestFormatVersion || pack.Manifest.Slug != "new-pack" {
		t.Errorf("unexpected manifest %+v", pack.Manifest)
	}
	if err := InitPack(dir, manifest); err == nil {
		t.Error("expected a second init to fail")
	}
}

func TestLoadPackReportsTypeAndSchemaIssues(t *testing.T) {
	root := writeTree(t, map[string]string{
		ManifestFileName: `{
  "formatVersion": 1,
  "slug": "x",
  "meta": {"version": "1.0.0", "authors": "Alice"},
  "versions": {"minecraft": "1.19.2"}
}`,
	})
	_, err := LoadPack(root)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	fields := map[string]string{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = issue.Message
	}
	if fields["meta/authors"] != "must be a list" {
		t.Errorf("expected a type issue for meta/authors, got %v", validationErr.Issues)
	}
	for _, expected := range []string{"meta/name", "meta/license", "versions/fabric"} {
		if _, ok := fields[expected]; !ok {
			t.Errorf("expected an issue for %s, got %v", expected, validationErr.Issues)
		}
	}
	if len(validationErr.Issues) != 4 {
		t.Errorf("expected one issue per field, got %v", validationErr.Issues)
	}
}

func TestMetaFileReportsTypeAndSchemaIssues(t *testing.T) {
	root := writeTree(t, map[string]string{
		ManifestFileName: testManifest,
		"src/client/mods/bad.hm.json": `{
  "enabled": "yes",
  "version": {"name": "1", "size": "big", "fileName": "a.jar", "downloadUrl": "https://example.com/a.jar", "hashes": {"sha1": "a"}},
  "source": {"type": "modrinth", "modId": 5}
}`,
	})
	_, err := LoadPack(root)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, expected := range []string{"enabled", "version/size", "version/hashes/sha512", "source/modId", "source/versionId"} {
		if !fields[expected] {
			t.Errorf("expected an issue for %s, got %v", expected, validationErr.Issues)
		}
	}
}
