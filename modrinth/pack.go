package modrinth

// Pack is the content of modrinth.index.json
type Pack struct {
	FormatVersion uint32            `json:"formatVersion"`
	Game          string            `json:"game"`
	VersionID     string            `json:"versionId"`
	Name          string            `json:"name"`
	Summary       string            `json:"summary,omitempty"`
	Files         []PackFile        `json:"files"`
	Dependencies  map[string]string `json:"dependencies"`
}

type PackFile struct {
	Path      string            `json:"path"`
	Hashes    map[string]string `json:"hashes"`
	Env       *PackFileEnv      `json:"env"`
	Downloads []string          `json:"downloads"`
	FileSize  *int64            `json:"fileSize,omitempty"`
}

// PackFileEnv says whether a file is installed on clients and servers
type PackFileEnv struct {
	Client string `json:"client"`
	Server string `json:"server"`
}

const (
	envRequired    = "required"
	envUnsupported = "unsupported"
)
