package core

import (
	"os"
	"path/filepath"
	"testing"
)

const testManifest = `{
  "formatVersion": 1,
  "slug": "test-pack",
  "meta": {
    "name": "Test Pack",
    "version": "1.0.0",
    "authors": ["Alice", "Bob"],
    "description": "A pack for tests",
    "license": "MIT"
  },
  "versions": {
    "minecraft": "1.19.2",
    "fabric": "0.14.9"
  }
}`

func modrinthMeta(label string, modID string, versionID string) string {
	return `{
  "displayName": "Test Mod",
  "version": {
    "name": "` + label + `",
    "size": 10,
    "fileName": "mod-` + label + `.jar",
    "downloadUrl": "https://cdn.example.com/mod-` + label + `.jar",
    "hashes": {"sha1": "aa", "sha512": "bb"}
  },
  "source": {"type": "modrinth", "modId": "` + modID + `", "versionId": "` + versionID + `"}
}`
}

const rawMeta = `{
  "version": {
    "name": "1.0",
    "fileName": "raw.jar",
    "downloadUrl": "https://example.com/raw.jar",
    "hashes": {"sha1": "cc", "sha512": "dd"}
  }
}`

// writeTree writes files (slash-separated paths relative to root) and returns root
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
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
	return root
}

func loadTestPack(t *testing.T, files map[string]string) *Pack {
	t.Helper()
	if _, ok := files[ManifestFileName]; !ok {
		files[ManifestFileName] = testManifest
	}
	root := writeTree(t, files)
	pack, err := LoadPack(root)
	if err != nil {
		t.Fatalf("failed to load pack: %v", err)
	}
	return pack
}
