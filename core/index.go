package core

// Index is the running list of files written by an export, in the order they were written.
// Its toml form is the packwiz index.toml.
type Index struct {
	HashFormat string        `toml:"hash-format"`
	Files      []IndexedFile `toml:"files"`
}

// IndexedFile is a file written into an export directory.
// Path is slash-separated and relative to the export directory.
type IndexedFile struct {
	Path     string `toml:"file"`
	Hash     string `toml:"hash"`
	MetaFile bool   `toml:"metafile"`
}

// IndexHashFormat is the hash algorithm used for every index entry
const IndexHashFormat = "sha512"

func NewIndex() *Index {
	return &Index{HashFormat: IndexHashFormat, Files: []IndexedFile{}}
}

// Add appends a file to the index
func (in *Index) Add(path string, hash string, metaFile bool) {
	in.Files = append(in.Files, IndexedFile{Path: path, Hash: hash, MetaFile: metaFile})
}

// Find returns the entry for path, if present
func (in *Index) Find(path string) (IndexedFile, bool) {
	for _, f := range in.Files {
		if f.Path == path {
			return f, true
		}
	}
	return IndexedFile{}, false
}
