package modrinth

import (
	"bytes"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	indexFileName = "modrinth.index.json"
	// ExportDirName is the directory below the exports directory holding the generated pack
	ExportDirName = "modrinth"
)

var overridesDirBySide = map[core.Side]string{
	core.ClientSide:    "client-overrides",
	core.ServerSide:    "server-overrides",
	core.UniversalSide: "overrides",
}

// Dialect writes packs in the Modrinth format. Mods are only listed in modrinth.index.json,
// static files go into the overrides directory of their side.
type Dialect struct {
	// MirrorClientDirs creates the parent directories of client overrides in overrides/ too.
	// Some launchers only create directories that exist in the universal overrides.
	MirrorClientDirs bool

	files []PackFile
}

func NewDialect(mirrorClientDirs bool) *Dialect {
	return &Dialect{MirrorClientDirs: mirrorClientDirs}
}

func (d *Dialect) WriteMetaFile(outDir string, mf *core.MetaFile, index *core.Index) error {
	version := mf.Content.Version

	// Modrinth URLs must be RFC3986
	u, err := core.ReencodeURL(version.DownloadURL)
	if err != nil {
		log.Warn("Failed to re-encode download URL", "entry", mf.RelPath, "err", err)
		u = version.DownloadURL
	}

	d.files = append(d.files, PackFile{
		Path: path.Join(path.Dir(mf.EffectivePath), version.FileName),
		Hashes: map[string]string{
			"sha1":   version.Hashes.SHA1,
			"sha512": version.Hashes.SHA512,
		},
		Env:       envFor(mf.Side),
		Downloads: []string{u},
		FileSize:  version.Size,
	})
	return nil
}

func envFor(side core.Side) *PackFileEnv {
	env := &PackFileEnv{Client: envUnsupported, Server: envUnsupported}
	if side.Includes(core.ClientSide) {
		env.Client = envRequired
	}
	if side.Includes(core.ServerSide) {
		env.Server = envRequired
	}
	return env
}

func (d *Dialect) StaticPath(sf *core.StaticFile) (string, bool) {
	return path.Join(overridesDirBySide[sf.Side], sf.EffectivePath), true
}

func (d *Dialect) AfterStatic(outDir string, sf *core.StaticFile) error {
	if !d.MirrorClientDirs || sf.Side != core.ClientSide {
		return nil
	}
	dir := path.Dir(path.Join(overridesDirBySide[core.UniversalSide], sf.EffectivePath))
	return os.MkdirAll(filepath.Join(outDir, filepath.FromSlash(dir)), os.ModePerm)
}

func (d *Dialect) Finish(outDir string, pack *core.Pack, index *core.Index) error {
	files := d.files
	if files == nil {
		files = []PackFile{}
	}
	// sort by path to keep the output reproducible
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	manifest := Pack{
		FormatVersion: 1,
		Game:          "minecraft",
		VersionID:     pack.Manifest.Meta.Version,
		Name:          pack.Manifest.Meta.Name,
		Summary:       pack.Manifest.Meta.Description,
		Files:         files,
		Dependencies: map[string]string{
			"minecraft":     pack.Manifest.Versions.Minecraft,
			"fabric-loader": pack.Manifest.Versions.Fabric,
		},
	}

	var buf bytes.Buffer
	w := json.NewEncoder(&buf)
	w.SetIndent("", "    ") // Documentation uses 4 spaces
	if err := w.Encode(manifest); err != nil {
		return err
	}
	d.files = nil
	return core.WriteIndexedFile(outDir, indexFileName, buf.Bytes(), false, index)
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the pack into a .mrpack for Modrinth",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		cmdshared.RunExportOrExit(&core.ExportRun{
			Pack:     pack,
			Dir:      filepath.Join(pack.ExportsDir, ExportDirName),
			Dialect:  NewDialect(viper.GetBool("modrinth.export.mirror-client-dirs")),
			Generate: !viper.GetBool("modrinth.export.no-generate"),
			Zip:      !viper.GetBool("modrinth.export.no-zip"),
			ZipPath:  filepath.Join(pack.ExportsDir, zipFileName(pack)),
			Clean:    viper.GetBool("modrinth.export.clean"),
		})
	},
}

func zipFileName(pack *core.Pack) string {
	return pack.Manifest.Slug + "-" + pack.Manifest.Meta.Version + ".mrpack"
}

func init() {
	modrinthCmd.AddCommand(exportCmd)

	exportCmd.Flags().Bool("no-generate", false, "Zip the existing output directory without generating it again")
	_ = viper.BindPFlag("modrinth.export.no-generate", exportCmd.Flags().Lookup("no-generate"))
	exportCmd.Flags().Bool("no-zip", false, "Only generate the output directory")
	_ = viper.BindPFlag("modrinth.export.no-zip", exportCmd.Flags().Lookup("no-zip"))
	exportCmd.Flags().Bool("clean", false, "Remove the output directory afterwards")
	_ = viper.BindPFlag("modrinth.export.clean", exportCmd.Flags().Lookup("clean"))
	exportCmd.Flags().Bool("mirror-client-dirs", true, "Create the directories of client overrides in overrides/ too")
	_ = viper.BindPFlag("modrinth.export.mirror-client-dirs", exportCmd.Flags().Lookup("mirror-client-dirs"))
}
