package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"
)

const (
	// ManifestFileName is the name of the file marking the root of a pack
	ManifestFileName = "horizr.json"
	// ManifestFormatVersion is the only manifest format version this build understands
	ManifestFormatVersion = 1

	SourceDirName  = "src"
	ExportsDirName = "exports"
	IgnoreFileName = ".horizrignore"
)

var (
	ErrPackNotFound      = errors.New(ManifestFileName + " could not be found in the current working directory or any parent")
	ErrUnsupportedFormat = errors.New("unsupported pack format version")
)

// PackManifest is the content of horizr.json
type PackManifest struct {
	FormatVersion int          `json:"formatVersion"`
	Slug          string       `json:"slug" validate:"required"`
	Meta          PackMeta     `json:"meta"`
	Versions      PackVersions `json:"versions"`
}

type PackMeta struct {
	Name        string   `json:"name" validate:"required"`
	Version     string   `json:"version" validate:"required"`
	Authors     []string `json:"authors" validate:"required,min=1,dive,required"`
	Description string   `json:"description,omitempty"`
	License     string   `json:"license" validate:"required"`
}

type PackVersions struct {
	Minecraft string `json:"minecraft" validate:"required"`
	Fabric    string `json:"fabric" validate:"required"`
}

// Pack is the loaded state of a pack directory. It is created once per command and passed to everything that needs it.
type Pack struct {
	Manifest PackManifest

	RootDir    string
	SourceDir  string
	ExportsDir string

	// MetaFiles and StaticFiles are sorted by their path relative to SourceDir
	MetaFiles   []*MetaFile
	StaticFiles []*StaticFile
}

// FindPackRoot walks upwards from start until a directory containing horizr.json is found
func FindPackRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrPackNotFound
		}
		dir = parent
	}
}

// LoadPack finds the pack containing start and loads its manifest and every source file
func LoadPack(start string) (*Pack, error) {
	root, err := FindPackRoot(start)
	if err != nil {
		return nil, err
	}

	manifest, err := readManifest(filepath.Join(root, ManifestFileName))
	if err != nil {
		return nil, err
	}

	pack := &Pack{
		Manifest:   manifest,
		RootDir:    root,
		SourceDir:  filepath.Join(root, SourceDirName),
		ExportsDir: filepath.Join(root, ExportsDirName),
	}
	if err := pack.loadSourceFiles(); err != nil {
		return nil, err
	}
	return pack, nil
}

func readManifest(manifestPath string) (PackManifest, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return PackManifest{}, fmt.Errorf("failed to read %s: %w", ManifestFileName, err)
	}

	var manifest PackManifest
	typeIssues, err := decodeJSON(ManifestFileName, data, &manifest)
	if err != nil {
		return PackManifest{}, err
	}
	if !hasIssue(typeIssues, "formatVersion") && manifest.FormatVersion != ManifestFormatVersion {
		return PackManifest{}, fmt.Errorf("%s: %w (found %d, expected %d)", ManifestFileName, ErrUnsupportedFormat, manifest.FormatVersion, ManifestFormatVersion)
	}
	if issues := mergeIssues(typeIssues, validateStruct(manifest, "")); len(issues) > 0 {
		return PackManifest{}, &ValidationError{Path: ManifestFileName, Issues: issues}
	}
	return manifest, nil
}

// InitPack writes a new manifest into dir. It fails if the directory already holds a pack.
func InitPack(dir string, manifest PackManifest) error {
	manifest.FormatVersion = ManifestFormatVersion
	if issues := validateStruct(manifest, ""); len(issues) > 0 {
		return &ValidationError{Path: ManifestFileName, Issues: issues}
	}

	manifestPath := filepath.Join(dir, ManifestFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists in %s", ManifestFileName, dir)
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := writeJSON(manifestPath, manifest); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("/"+ExportsDirName+"/\n"), 0644)
}

// WriteManifest saves the manifest back to horizr.json
func (p *Pack) WriteManifest() error {
	return writeJSON(filepath.Join(p.RootDir, ManifestFileName), p.Manifest)
}

// ModCount returns the number of meta files placed in a mods directory
func (p *Pack) ModCount() int {
	count := 0
	for _, mf := range p.MetaFiles {
		if mf.IsMod {
			count++
		}
	}
	return count
}

func (p *Pack) newSourceFile(relPath string) SourceFile {
	segments := strings.Split(relPath, "/")
	return SourceFile{
		RelPath:       relPath,
		AbsPath:       filepath.Join(p.SourceDir, filepath.FromSlash(relPath)),
		Side:          Side(segments[0]),
		EffectivePath: strings.Join(segments[1:], "/"),
		IsMod:         len(segments) > 2 && segments[1] == "mods",
	}
}

func (p *Pack) listSourceFiles() ([]string, error) {
	var matcher *ignore.GitIgnore
	ignorePath := filepath.Join(p.SourceDir, IgnoreFileName)
	if _, err := os.Stat(ignorePath); err == nil {
		matcher, err = ignore.CompileIgnoreFile(ignorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", IgnoreFileName, err)
		}
	}

	var paths []string
	for _, side := range Sides {
		sideDir := filepath.Join(p.SourceDir, string(side))
		if _, err := os.Stat(sideDir); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		err := filepath.WalkDir(sideDir, func(filePath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(p.SourceDir, filePath)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if matcher != nil && matcher.MatchesPath(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			// Symlinks are neither followed nor listed
			if d.Type().IsRegular() {
				paths = append(paths, rel)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list source files: %w", err)
		}
	}
	slices.Sort(paths)
	return paths, nil
}

func (p *Pack) loadSourceFiles() error {
	paths, err := p.listSourceFiles()
	if err != nil {
		return err
	}

	metaFiles := make([]*MetaFile, len(paths))
	staticFiles := make([]*StaticFile, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, rel := range paths {
		i, rel := i, rel
		g.Go(func() error {
			sf := p.newSourceFile(rel)
			if !strings.HasSuffix(rel, MetaFileExtension) {
				staticFiles[i] = &StaticFile{SourceFile: sf}
				return nil
			}
			mf, err := readMetaFile(sf)
			if err != nil {
				return err
			}
			metaFiles[i] = mf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	p.MetaFiles = slices.DeleteFunc(metaFiles, func(mf *MetaFile) bool { return mf == nil })
	p.StaticFiles = slices.DeleteFunc(staticFiles, func(sf *StaticFile) bool { return sf == nil })
	return nil
}

// AddMetaFile writes a new meta file for id into the mods directory of side and registers it.
// Callers are expected to pick a free id with FreeID first.
func (p *Pack) AddMetaFile(side Side, id string, content MetaContent) (*MetaFile, error) {
	rel := path.Join(string(side), "mods", id+MetaFileExtension)
	mf := &MetaFile{
		SourceFile: p.newSourceFile(rel),
		ID:         id,
		Content:    content,
	}
	if err := mf.Save(); err != nil {
		return nil, err
	}
	p.MetaFiles = append(p.MetaFiles, mf)
	slices.SortFunc(p.MetaFiles, func(a, b *MetaFile) int { return strings.Compare(a.RelPath, b.RelPath) })
	return mf, nil
}

// RemoveMetaFile deletes the file of mf and forgets about it
func (p *Pack) RemoveMetaFile(mf *MetaFile) error {
	if err := os.Remove(mf.AbsPath); err != nil {
		return fmt.Errorf("failed to remove %s: %w", mf.RelPath, err)
	}
	p.MetaFiles = slices.DeleteFunc(p.MetaFiles, func(other *MetaFile) bool { return other == mf })
	return nil
}

func writeJSON(filePath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(filePath), err)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filepath.Base(filePath), err)
	}
	return os.WriteFile(filePath, append(data, '\n'), 0644)
}
