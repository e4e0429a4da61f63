package packwiz

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/horizr/horizr/core"
)

const (
	indexFileName = "index.toml"
	packFileName  = "pack.toml"
	modFileSuffix = ".pw.toml"
	packFormat    = "packwiz:1.1.0"
)

// Mod is the descriptor written for each mod entry
type Mod struct {
	Name     string      `toml:"name"`
	FileName string      `toml:"filename"`
	Side     string      `toml:"side"`
	Download ModDownload `toml:"download"`
	// Update is only set for mods that can be updated from a registry
	Update *ModUpdate `toml:"update,omitempty"`
}

type ModDownload struct {
	HashFormat string `toml:"hash-format"`
	Hash       string `toml:"hash"`
	URL        string `toml:"url"`
}

type ModUpdate struct {
	Modrinth ModrinthUpdate `toml:"modrinth"`
}

type ModrinthUpdate struct {
	ModID   string `toml:"mod-id"`
	Version string `toml:"version"`
}

// Pack is the content of pack.toml
type Pack struct {
	Name        string       `toml:"name"`
	Author      string       `toml:"author"`
	Description string       `toml:"description,omitempty"`
	PackFormat  string       `toml:"pack-format"`
	Versions    PackVersions `toml:"versions"`
	Index       PackIndex    `toml:"index"`
}

type PackVersions struct {
	Minecraft string `toml:"minecraft"`
	Fabric    string `toml:"fabric"`
}

type PackIndex struct {
	// File is stored in forward slash format relative to pack.toml
	File       string `toml:"file"`
	HashFormat string `toml:"hash-format"`
	Hash       string `toml:"hash"`
}

// sideName returns the packwiz name of a side
func sideName(side core.Side) string {
	if side == core.UniversalSide {
		return "both"
	}
	return string(side)
}

func newMod(mf *core.MetaFile) Mod {
	mod := Mod{
		Name:     mf.Name(),
		FileName: mf.Content.Version.FileName,
		Side:     sideName(mf.Side),
		Download: ModDownload{
			HashFormat: "sha512",
			Hash:       mf.Content.Version.Hashes.SHA512,
			URL:        mf.Content.Version.DownloadURL,
		},
	}
	if src, ok := mf.Content.Source.(core.ModrinthSource); ok {
		mod.Update = &ModUpdate{Modrinth: ModrinthUpdate{ModID: src.ModID, Version: src.VersionID}}
	}
	return mod
}

func encodeTOML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	// Disable indentation
	enc.Indent = ""
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
