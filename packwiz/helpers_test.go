package packwiz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/horizr/horizr/core"
)

const testManifest = `{
  "formatVersion": 1,
  "slug": "test-pack",
  "meta": {
    "name": "Test Pack",
    "version": "1.2.0",
    "authors": ["Alice", "Bob"],
    "description": "A pack for tests",
    "license": "MIT"
  },
  "versions": {
    "minecraft": "1.19.2",
    "fabric": "0.14.9"
  }
}`

const sodiumEntry = `{
  "displayName": "Sodium",
  "version": {
    "name": "0.4.4",
    "size": 10,
    "fileName": "sodium-0.4.4.jar",
    "downloadUrl": "https://cdn.modrinth.com/sodium-0.4.4.jar",
    "hashes": {"sha1": "aa", "sha512": "bb"}
  },
  "source": {"type": "modrinth", "modId": "AANobbMI", "versionId": "rel1"}
}`

const rawEntry = `{
  "version": {
    "name": "1.0",
    "fileName": "raw.jar",
    "downloadUrl": "https://example.com/raw.jar",
    "hashes": {"sha1": "cc", "sha512": "dd"}
  }
}`

func loadTestPack(t *testing.T) *core.Pack {
	t.Helper()
	files := map[string]string{
		core.ManifestFileName:                testManifest,
		"src/client/mods/sodium.hm.json":     sodiumEntry,
		"src/universal/mods/raw.hm.json":     rawEntry,
		"src/server/mods/off.hm.json":        `{"enabled": false, "version": {"name": "1", "fileName": "off.jar", "downloadUrl": "https://example.com/off.jar", "hashes": {"sha1": "e", "sha512": "f"}}}`,
		"src/client/options.txt":             "fov:90",
		"src/universal/config/shared.json":   "{}",
		"src/server/config/server-only.json": "{}",
	}
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	pack, err := core.LoadPack(root)
	if err != nil {
		t.Fatalf("failed to load pack: %v", err)
	}
	return pack
}
