package core

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ZipDirectory writes the contents of dir into a zip archive at outPath.
// Entries whose names start with "." are skipped. Directories that end up without any entry
// are added explicitly so they survive extraction.
func ZipDirectory(dir string, outPath string) (err error) {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer func() {
		_ = f.Close()
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	w := zip.NewWriter(f)
	if _, err := addZipDirectory(w, dir, ""); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to zip %s: %w", dir, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return f.Close()
}

// addZipDirectory adds the children of dir/rel and reports whether anything was written
func addZipDirectory(w *zip.Writer, dir string, rel string) (bool, error) {
	entries, err := os.ReadDir(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return false, err
	}

	written := false
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		entryRel := path.Join(rel, entry.Name())
		switch {
		case entry.IsDir():
			hasChildren, err := addZipDirectory(w, dir, entryRel)
			if err != nil {
				return false, err
			}
			if !hasChildren {
				if _, err := w.CreateHeader(&zip.FileHeader{Name: entryRel + "/", Method: zip.Store}); err != nil {
					return false, err
				}
			}
			written = true
		case entry.Type().IsRegular():
			if err := addZipFile(w, dir, entryRel); err != nil {
				return false, err
			}
			written = true
		}
	}
	return written, nil
}

func addZipFile(w *zip.Writer, dir string, rel string) error {
	src, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}
	defer src.Close()

	dest, err := w.CreateHeader(&zip.FileHeader{Name: rel, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(dest, src)
	return err
}
