package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// MetaFileExtension is the suffix of files describing a single mod
const MetaFileExtension = ".hm.json"

// Side is the deployment target of a source file, taken from the first segment of its path
type Side string

const (
	ClientSide    Side = "client"
	ServerSide    Side = "server"
	UniversalSide Side = "universal"
)

// Sides lists every side directory of the source tree
var Sides = []Side{ClientSide, ServerSide, UniversalSide}

// ParseSide parses a side name; "both" is accepted as an alias of universal
func ParseSide(s string) (Side, error) {
	switch s {
	case "client":
		return ClientSide, nil
	case "server":
		return ServerSide, nil
	case "universal", "both":
		return UniversalSide, nil
	}
	return "", fmt.Errorf("invalid side %q (expected client, server or universal)", s)
}

// Includes reports whether files of side s belong in an export targeting side target
func (s Side) Includes(target Side) bool {
	return s == UniversalSide || s == target
}

// SourceFile is any file below the source directory
type SourceFile struct {
	// RelPath is slash-separated and relative to the source directory, including the side segment
	RelPath string
	AbsPath string
	Side    Side
	// EffectivePath is RelPath without the side segment
	EffectivePath string
	IsMod         bool
}

// StaticFile is a source file that is copied into exports as-is
type StaticFile struct {
	SourceFile
}

// MetaFile is a mod entry: a .hm.json file describing one mod, its file and where it came from
type MetaFile struct {
	SourceFile
	// ID is the file name without MetaFileExtension
	ID      string
	Content MetaContent
}

// DisplayString returns the path of the entry followed by its display name, if it has one
func (m *MetaFile) DisplayString() string {
	if m.Content.DisplayName == "" {
		return m.RelPath
	}
	return m.RelPath + " (" + m.Content.DisplayName + ")"
}

// Name returns the display name or, if there is none, the id
func (m *MetaFile) Name() string {
	if m.Content.DisplayName != "" {
		return m.Content.DisplayName
	}
	return m.ID
}

// Save overwrites the file of this entry with its current content
func (m *MetaFile) Save() error {
	return writeJSON(m.AbsPath, m.Content)
}

// MetaContent is the decoded content of a meta file
type MetaContent struct {
	DisplayName   string
	Enabled       bool
	Comment       string
	Version       FileRecord
	Source        Source
	IgnoreUpdates bool
}

// FileRecord describes the downloadable file of the active version
type FileRecord struct {
	Name        string     `json:"name" validate:"required"`
	Size        *int64     `json:"size,omitempty" validate:"omitempty,min=0"`
	FileName    string     `json:"fileName" validate:"required"`
	DownloadURL string     `json:"downloadUrl" validate:"required,url"`
	Hashes      FileHashes `json:"hashes"`
}

type FileHashes struct {
	SHA1   string `json:"sha1" validate:"required"`
	SHA512 string `json:"sha512" validate:"required"`
}

// Source says where a mod entry came from. It is either ModrinthSource or RawSource.
type Source interface {
	SourceType() string
	isSource()
}

// ModrinthSource entries can be updated through the Modrinth API
type ModrinthSource struct {
	ModID     string
	VersionID string
}

func (ModrinthSource) SourceType() string { return "modrinth" }
func (ModrinthSource) isSource()          {}

// RawSource entries point at a plain URL and are never updated
type RawSource struct{}

func (RawSource) SourceType() string { return "raw" }
func (RawSource) isSource()          {}

type metaDocument struct {
	DisplayName string                 `json:"displayName,omitempty"`
	Enabled     *bool                  `json:"enabled,omitempty"`
	Comment     string                 `json:"comment,omitempty"`
	Version     FileRecord             `json:"version"`
	Source      map[string]interface{} `json:"source,omitempty"`
}

type sourceDocument struct {
	Type          string `json:"type" mapstructure:"type" validate:"required,oneof=modrinth raw"`
	ModID         string `json:"modId,omitempty" mapstructure:"modId" validate:"required_if=Type modrinth"`
	VersionID     string `json:"versionId,omitempty" mapstructure:"versionId" validate:"required_if=Type modrinth"`
	IgnoreUpdates bool   `json:"ignoreUpdates" mapstructure:"ignoreUpdates"`
}

func (c MetaContent) MarshalJSON() ([]byte, error) {
	src := sourceDocument{Type: "raw", IgnoreUpdates: c.IgnoreUpdates}
	switch s := c.Source.(type) {
	case ModrinthSource:
		src.Type = s.SourceType()
		src.ModID = s.ModID
		src.VersionID = s.VersionID
	case RawSource, nil:
	default:
		return nil, fmt.Errorf("unknown source type %T", s)
	}

	enabled := c.Enabled
	return json.Marshal(struct {
		DisplayName string         `json:"displayName,omitempty"`
		Enabled     *bool          `json:"enabled"`
		Comment     string         `json:"comment,omitempty"`
		Version     FileRecord     `json:"version"`
		Source      sourceDocument `json:"source"`
	}{c.DisplayName, &enabled, c.Comment, c.Version, src})
}

// ParseMetaContent decodes and validates the content of a meta file.
// name is used in error messages.
func ParseMetaContent(name string, data []byte) (MetaContent, error) {
	var doc metaDocument
	typeIssues, err := decodeJSON(name, data, &doc)
	if err != nil {
		return MetaContent{}, err
	}

	issues := mergeIssues(typeIssues, validateStruct(doc, ""))
	src := sourceDocument{Type: "raw"}
	if doc.Source != nil && !hasIssue(typeIssues, "source") {
		sourceIssues, err := decodeMap(doc.Source, &src, "mapstructure", "source")
		if err != nil {
			return MetaContent{}, fmt.Errorf("failed to decode the source of %s: %w", name, err)
		}
		issues = append(issues, mergeIssues(sourceIssues, validateStruct(src, "source"))...)
	}
	if len(issues) > 0 {
		return MetaContent{}, &ValidationError{Path: name, Issues: issues}
	}

	content := MetaContent{
		DisplayName:   doc.DisplayName,
		Enabled:       doc.Enabled == nil || *doc.Enabled,
		Comment:       doc.Comment,
		Version:       doc.Version,
		IgnoreUpdates: src.IgnoreUpdates,
	}
	if src.Type == "modrinth" {
		content.Source = ModrinthSource{ModID: src.ModID, VersionID: src.VersionID}
	} else {
		content.Source = RawSource{}
	}
	return content, nil
}

func readMetaFile(sf SourceFile) (*MetaFile, error) {
	data, err := os.ReadFile(sf.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sf.RelPath, err)
	}
	content, err := ParseMetaContent(sf.RelPath, data)
	if err != nil {
		return nil, err
	}
	return &MetaFile{
		SourceFile: sf,
		ID:         metaFileID(sf.RelPath),
		Content:    content,
	}, nil
}
