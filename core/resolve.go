package core

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// ProjectCodePrefix marks a code as a Modrinth project id
	ProjectCodePrefix = "mr:"
	// VersionCodePrefix marks a code as a Modrinth version id
	VersionCodePrefix = "@"
)

func metaFileID(relPath string) string {
	return strings.TrimSuffix(path.Base(relPath), MetaFileExtension)
}

// FindByCode resolves a mod entry from user input, which is one of:
//   - the file name without extension (sodium)
//   - a Modrinth project id prefixed with "mr:" (mr:AANobbMI)
//   - a Modrinth version id prefixed with "@" (@Yp8wLY1P)
//   - a path to the meta file, relative to the working directory, with or without extension
//
// It returns nil when nothing matches.
func (p *Pack) FindByCode(code string) *MetaFile {
	if id, ok := strings.CutPrefix(code, ProjectCodePrefix); ok {
		return p.findBySource(func(s ModrinthSource) bool { return s.ModID == id })
	}
	if id, ok := strings.CutPrefix(code, VersionCodePrefix); ok {
		return p.findBySource(func(s ModrinthSource) bool { return s.VersionID == id })
	}

	if strings.ContainsAny(code, `/\`) || strings.HasSuffix(code, MetaFileExtension) {
		if mf := p.findByPath(code); mf != nil {
			return mf
		}
	}

	for _, mf := range p.MetaFiles {
		if mf.ID == code {
			return mf
		}
	}
	return nil
}

// FindByProject returns the entry sourced from the given Modrinth project, if any
func (p *Pack) FindByProject(projectID string) *MetaFile {
	return p.findBySource(func(s ModrinthSource) bool { return s.ModID == projectID })
}

func (p *Pack) findBySource(match func(ModrinthSource) bool) *MetaFile {
	for _, mf := range p.MetaFiles {
		if src, ok := mf.Content.Source.(ModrinthSource); ok && match(src) {
			return mf
		}
	}
	return nil
}

func (p *Pack) findByPath(input string) *MetaFile {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(p.SourceDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasSuffix(rel, MetaFileExtension) {
		rel += MetaFileExtension
	}
	for _, mf := range p.MetaFiles {
		if mf.RelPath == rel {
			return mf
		}
	}
	return nil
}

// FreeID returns base if no entry uses it yet, otherwise base with a short random suffix
func (p *Pack) FreeID(base string) string {
	id := base
	for p.idTaken(id) {
		id = base + "-" + uuid.NewString()[:5]
	}
	return id
}

func (p *Pack) idTaken(id string) bool {
	for _, mf := range p.MetaFiles {
		if mf.ID == id {
			return true
		}
	}
	return false
}

// IDs returns the ids of all entries, for suggestions
func (p *Pack) IDs() []string {
	ids := make([]string, len(p.MetaFiles))
	for i, mf := range p.MetaFiles {
		ids[i] = mf.ID
	}
	return ids
}
