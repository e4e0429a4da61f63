package cmd

import (
	"crypto/sha512"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
)

const testManifest = `{
  "formatVersion": 1,
  "slug": "test-pack",
  "meta": {"name": "Test Pack", "version": "1.0.0", "authors": ["Alice"], "license": "MIT"},
  "versions": {"minecraft": "1.19.2", "fabric": "0.14.9"}
}`

func sha512Hex(data string) string {
	sum := sha512.Sum512([]byte(data))
	return hex.EncodeToString(sum[:])
}

// rawEntry is a raw meta file for url whose recorded sha512 matches content
func rawEntry(url string, fileName string, content string, enabled bool) string {
	enabledValue := "true"
	if !enabled {
		enabledValue = "false"
	}
	return `{
  "enabled": ` + enabledValue + `,
  "version": {
    "name": "1.0",
    "size": ` + strconv.Itoa(len(content)) + `,
    "fileName": "` + fileName + `",
    "downloadUrl": "` + url + `",
    "hashes": {"sha1": "stale", "sha512": "` + sha512Hex(content) + `"}
  },
  "source": {"type": "raw"}
}`
}

func loadTestPack(t *testing.T, files map[string]string) *core.Pack {
	t.Helper()
	root := t.TempDir()
	files[core.ManifestFileName] = testManifest
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

// finishProgress fails the test if progress.Done does not return in time
func finishProgress(t *testing.T, progress *cmdshared.Progress) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		progress.Done()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("the progress bar never finished")
	}
}
