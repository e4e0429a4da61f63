package modrinth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/horizr/horizr/core"
)

const testManifest = `{
  "formatVersion": 1,
  "slug": "test-pack",
  "meta": {
    "name": "Test Pack",
    "version": "1.2.0",
    "authors": ["Alice"],
    "description": "A pack for tests",
    "license": "MIT"
  },
  "versions": {
    "minecraft": "1.19.2",
    "fabric": "0.14.9"
  }
}`

const sodiumProject = `{
  "id": "AANobbMI",
  "slug": "sodium",
  "title": "Sodium",
  "description": "Modern rendering engine",
  "categories": ["fabric", "optimization"],
  "client_side": "required",
  "server_side": "unsupported",
  "downloads": 1000
}`

const sodiumVersions = `[
  {
    "id": "beta2",
    "project_id": "AANobbMI",
    "name": "Sodium 0.5.0 beta",
    "version_number": "0.5.0-beta.1",
    "version_type": "beta",
    "featured": false,
    "date_published": "2022-09-01T00:00:00Z",
    "game_versions": ["1.19.2"],
    "loaders": ["fabric"],
    "downloads": 5,
    "dependencies": [],
    "files": [
      {"hashes": {"sha1": "b1", "sha512": "b512"}, "url": "https://cdn.modrinth.com/data/AANobbMI/versions/beta2/sodium-0.5.0-beta.1.jar", "filename": "sodium-0.5.0-beta.1.jar", "primary": true, "size": 300}
    ]
  },
  {
    "id": "rel1",
    "project_id": "AANobbMI",
    "name": "Sodium 0.4.4",
    "version_number": "0.4.4",
    "version_type": "release",
    "featured": true,
    "date_published": "2022-08-01T00:00:00Z",
    "changelog": "Fixes",
    "game_versions": ["1.19.1", "1.19.2"],
    "loaders": ["fabric"],
    "downloads": 50,
    "dependencies": [
      {"project_id": "P7dR8mSH", "dependency_type": "required"},
      {"version_id": "irisv", "dependency_type": "optional"},
      {"project_id": "weird", "dependency_type": "something-else"}
    ],
    "files": [
      {"hashes": {"sha1": "s1", "sha512": "s512"}, "url": "https://cdn.modrinth.com/data/AANobbMI/versions/rel1/sodium-0.4.4-sources.jar", "filename": "sodium-0.4.4-sources.jar", "primary": false, "size": 100},
      {"hashes": {"sha1": "r1", "sha512": "r512"}, "url": "https://cdn.modrinth.com/data/AANobbMI/versions/rel1/sodium-0.4.4.jar", "filename": "sodium-0.4.4.jar", "primary": true, "size": 200}
    ]
  },
  {
    "id": "old1",
    "project_id": "AANobbMI",
    "name": "0.3.0",
    "version_number": "0.3.0",
    "version_type": "release",
    "featured": false,
    "date_published": "2021-01-01T00:00:00Z",
    "game_versions": ["1.16.5"],
    "loaders": ["fabric"],
    "downloads": 500,
    "files": [
      {"hashes": {"sha1": "o1", "sha512": "o512"}, "url": "https://cdn.modrinth.com/data/AANobbMI/versions/old1/sodium-0.3.0.jar", "filename": "sodium-0.3.0.jar", "primary": true, "size": 150}
    ]
  }
]`

// testRegistry returns a registry that neither throttles nor waits between attempts
func testRegistry() *Registry {
	return NewRegistry(&Client{
		Sleep: func(ctx context.Context, d time.Duration) error { return ctx.Err() },
	})
}

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

func loadTestPack(t *testing.T, files map[string]string) *core.Pack {
	t.Helper()
	if files == nil {
		files = map[string]string{}
	}
	if _, ok := files[core.ManifestFileName]; !ok {
		files[core.ManifestFileName] = testManifest
	}
	pack, err := core.LoadPack(writeTree(t, files))
	if err != nil {
		t.Fatalf("failed to load pack: %v", err)
	}
	return pack
}

func modrinthEntry(label string, modID string, versionID string) string {
	return `{
  "displayName": "Test Mod",
  "version": {
    "name": "` + label + `",
    "size": 10,
    "fileName": "mod-` + label + `.jar",
    "downloadUrl": "https://cdn.modrinth.com/mod-` + label + `.jar",
    "hashes": {"sha1": "aa", "sha512": "bb"}
  },
  "source": {"type": "modrinth", "modId": "` + modID + `", "versionId": "` + versionID + `"}
}`
}
