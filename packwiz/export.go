package packwiz

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/horizr/horizr/cmdshared"
	"github.com/horizr/horizr/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Dialect writes packs in the packwiz format: a descriptor per mod, index.toml and pack.toml.
// Only the static files of Side and the universal side are included.
type Dialect struct {
	Side core.Side
}

func NewDialect(server bool) *Dialect {
	if server {
		return &Dialect{Side: core.ServerSide}
	}
	return &Dialect{Side: core.ClientSide}
}

// modFilePath places the descriptor next to where the mod file would be, named after the entry id
func modFilePath(mf *core.MetaFile) string {
	return path.Join(path.Dir(mf.EffectivePath), mf.ID+modFileSuffix)
}

func (d *Dialect) WriteMetaFile(outDir string, mf *core.MetaFile, index *core.Index) error {
	data, err := encodeTOML(newMod(mf))
	if err != nil {
		return err
	}
	return core.WriteIndexedFile(outDir, modFilePath(mf), data, true, index)
}

func (d *Dialect) StaticPath(sf *core.StaticFile) (string, bool) {
	if !sf.Side.Includes(d.Side) {
		return "", false
	}
	return sf.EffectivePath, true
}

func (d *Dialect) Finish(outDir string, pack *core.Pack, index *core.Index) error {
	indexData, err := encodeTOML(index)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", indexFileName, err)
	}
	if err := os.WriteFile(filepath.Join(outDir, indexFileName), indexData, 0644); err != nil {
		return err
	}
	indexHash, err := core.HashBytes(indexData, core.IndexHashFormat)
	if err != nil {
		return err
	}

	packData, err := encodeTOML(Pack{
		Name:        pack.Manifest.Meta.Name,
		Author:      strings.Join(pack.Manifest.Meta.Authors, ", "),
		Description: pack.Manifest.Meta.Description,
		PackFormat:  packFormat,
		Versions: PackVersions{
			Minecraft: pack.Manifest.Versions.Minecraft,
			Fabric:    pack.Manifest.Versions.Fabric,
		},
		Index: PackIndex{
			File:       indexFileName,
			HashFormat: core.IndexHashFormat,
			Hash:       indexHash,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", packFileName, err)
	}
	return os.WriteFile(filepath.Join(outDir, packFileName), packData, 0644)
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate a packwiz pack in the exports directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pack := cmdshared.LoadPackOrExit()
		server := viper.GetBool("packwiz.export.server")
		cmdshared.RunExportOrExit(&core.ExportRun{
			Pack:     pack,
			Dir:      filepath.Join(pack.ExportsDir, ExportDirName),
			Dialect:  NewDialect(server),
			Generate: !viper.GetBool("packwiz.export.no-generate"),
			Zip:      viper.GetBool("packwiz.export.zip"),
			ZipPath:  filepath.Join(pack.ExportsDir, zipFileName(pack, server)),
			Clean:    viper.GetBool("packwiz.export.clean"),
		})
	},
}

func zipFileName(pack *core.Pack, server bool) string {
	side := core.ClientSide
	if server {
		side = core.ServerSide
	}
	return fmt.Sprintf("%s-%s-packwiz-%s.zip", pack.Manifest.Slug, pack.Manifest.Meta.Version, side)
}

func init() {
	packwizCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolP("server", "s", false, "Include server instead of client static files")
	_ = viper.BindPFlag("packwiz.export.server", exportCmd.Flags().Lookup("server"))
	exportCmd.Flags().Bool("no-generate", false, "Zip the existing output directory without generating it again")
	_ = viper.BindPFlag("packwiz.export.no-generate", exportCmd.Flags().Lookup("no-generate"))
	exportCmd.Flags().Bool("zip", false, "Also write the output directory into a zip file")
	_ = viper.BindPFlag("packwiz.export.zip", exportCmd.Flags().Lookup("zip"))
	exportCmd.Flags().Bool("clean", false, "Remove the output directory afterwards")
	_ = viper.BindPFlag("packwiz.export.clean", exportCmd.Flags().Lookup("clean"))
}
