package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Dialect is an export format. Generate drives it through the steps every format shares.
type Dialect interface {
	// WriteMetaFile writes whatever the format needs for one enabled entry and records it in index
	WriteMetaFile(outDir string, mf *MetaFile, index *Index) error
	// StaticPath returns where sf is placed in the export, or false if it is not part of it
	StaticPath(sf *StaticFile) (string, bool)
	// Finish writes the top-level files once every entry and static file is in place
	Finish(outDir string, pack *Pack, index *Index) error
}

// StaticHook is implemented by dialects that need to act after a static file was copied
type StaticHook interface {
	AfterStatic(outDir string, sf *StaticFile) error
}

// Generate recreates outDir from the current state of pack in the given format.
// Disabled entries are left out. Static files are hashed from the copied bytes.
func Generate(pack *Pack, outDir string, dialect Dialect) (*Index, error) {
	if err := os.RemoveAll(outDir); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	index := NewIndex()
	for _, mf := range pack.MetaFiles {
		if !mf.Content.Enabled {
			log.Warn("Skipping disabled entry", "entry", mf.RelPath)
			continue
		}
		if err := dialect.WriteMetaFile(outDir, mf, index); err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", mf.RelPath, err)
		}
	}

	hook, hasHook := dialect.(StaticHook)
	for _, sf := range pack.StaticFiles {
		target, ok := dialect.StaticPath(sf)
		if !ok {
			continue
		}
		hash, err := copyAndHash(sf.AbsPath, filepath.Join(outDir, filepath.FromSlash(target)))
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", sf.RelPath, err)
		}
		index.Add(target, hash, false)

		if hasHook {
			if err := hook.AfterStatic(outDir, sf); err != nil {
				return nil, err
			}
		}
	}

	if err := dialect.Finish(outDir, pack, index); err != nil {
		return nil, err
	}
	return index, nil
}

func copyAndHash(src string, dest string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return "", err
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return HashFile(dest, IndexHashFormat)
}

// WriteIndexedFile writes data to rel below outDir and records it in index
func WriteIndexedFile(outDir string, rel string, data []byte, metaFile bool, index *Index) error {
	dest := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return err
	}
	hash, err := HashBytes(data, IndexHashFormat)
	if err != nil {
		return err
	}
	index.Add(rel, hash, metaFile)
	return nil
}

// ExportState is a stage of an ExportRun
type ExportState int

const (
	StateIdle ExportState = iota
	StateGenerating
	StateGenerated
	StateZipping
	StateZipped
	StateCleaning
	StateCleaned
	StateFailed
)

func (s ExportState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateGenerated:
		return "generated"
	case StateZipping:
		return "zipping"
	case StateZipped:
		return "zipped"
	case StateCleaning:
		return "cleaning"
	case StateCleaned:
		return "cleaned"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("ExportState(%d)", int(s))
}

// PreconditionError is returned when zipping an export directory that does not exist
type PreconditionError struct {
	Dir string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("the export directory %s does not exist, run the export without --no-generate to create it", e.Dir)
}

// ExportRun generates, zips and cleans up an export directory. Each stage can be skipped.
type ExportRun struct {
	Pack    *Pack
	Dir     string
	Dialect Dialect

	Generate bool
	Zip      bool
	// ZipPath is where the archive is written when Zip is set
	ZipPath string
	Clean   bool

	// OnState is called on every state change
	OnState func(ExportState)

	state ExportState
	index *Index
}

func (r *ExportRun) State() ExportState {
	return r.state
}

// Index returns the index of the generation stage, nil if it was skipped
func (r *ExportRun) Index() *Index {
	return r.index
}

func (r *ExportRun) setState(s ExportState) {
	r.state = s
	if r.OnState != nil {
		r.OnState(s)
	}
}

func (r *ExportRun) fail(err error) error {
	r.setState(StateFailed)
	return err
}

// Run executes the enabled stages in order
func (r *ExportRun) Run() error {
	if r.Generate {
		r.setState(StateGenerating)
		index, err := Generate(r.Pack, r.Dir, r.Dialect)
		if err != nil {
			return r.fail(err)
		}
		r.index = index
		r.setState(StateGenerated)
	}

	if r.Zip {
		if _, err := os.Stat(r.Dir); errors.Is(err, fs.ErrNotExist) {
			return r.fail(&PreconditionError{Dir: r.Dir})
		} else if err != nil {
			return r.fail(err)
		}
		r.setState(StateZipping)
		if err := ZipDirectory(r.Dir, r.ZipPath); err != nil {
			return r.fail(err)
		}
		r.setState(StateZipped)
	}

	if r.Clean {
		r.setState(StateCleaning)
		if err := os.RemoveAll(r.Dir); err != nil {
			return r.fail(fmt.Errorf("failed to remove %s: %w", r.Dir, err))
		}
		r.setState(StateCleaned)
	}
	return nil
}
