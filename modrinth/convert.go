package modrinth

import (
	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/horizr/horizr/core"
)

// val dereferences the optional fields of go-modrinth models
func val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

var relationTypes = map[string]core.RelationType{
	"required":     core.HardDependency,
	"optional":     core.SoftDependency,
	"embedded":     core.EmbeddedDependency,
	"incompatible": core.Incompatible,
}

func convertProject(p *modrinthApi.Project) *core.CatalogMod {
	return &core.CatalogMod{
		ID:          val(p.ID),
		Slug:        val(p.Slug),
		Title:       val(p.Title),
		Description: val(p.Description),
		Categories:  p.Categories,
		ClientSide:  val(p.ClientSide),
		ServerSide:  val(p.ServerSide),
		Downloads:   int(val(p.Downloads)),
	}
}

func convertSearchResult(r *modrinthApi.SearchResult) core.CatalogMod {
	return core.CatalogMod{
		ID:          val(r.ProjectID),
		Slug:        val(r.Slug),
		Title:       val(r.Title),
		Description: val(r.Description),
		Categories:  r.Categories,
		ClientSide:  val(r.ClientSide),
		ServerSide:  val(r.ServerSide),
		Downloads:   int(val(r.Downloads)),
	}
}

func convertVersion(v *modrinthApi.Version) core.CatalogVersion {
	out := core.CatalogVersion{
		ID:             val(v.ID),
		ProjectID:      val(v.ProjectID),
		Name:           val(v.Name),
		VersionString:  val(v.VersionNumber),
		ReleaseChannel: core.ReleaseChannel(val(v.VersionType)),
		Featured:       val(v.Featured),
		Published:      val(v.DatePublished),
		Changelog:      val(v.Changelog),
		GameVersions:   v.GameVersions,
		Loaders:        v.Loaders,
		Downloads:      int(val(v.Downloads)),
	}
	for _, dep := range v.Dependencies {
		if dep == nil {
			continue
		}
		relationType, ok := relationTypes[val(dep.DependencyType)]
		if !ok {
			continue
		}
		out.Relations = append(out.Relations, core.Relation{
			Type:      relationType,
			ProjectID: val(dep.ProjectID),
			VersionID: val(dep.VersionID),
		})
	}
	for _, f := range v.Files {
		if f == nil {
			continue
		}
		out.Files = append(out.Files, core.CatalogFile{
			Primary:  val(f.Primary),
			Hashes:   f.Hashes,
			FileName: val(f.Filename),
			URL:      val(f.URL),
			Size:     int64(val(f.Size)),
		})
	}
	return out
}

func convertVersions(versions []*modrinthApi.Version) []core.CatalogVersion {
	out := make([]core.CatalogVersion, 0, len(versions))
	for _, v := range versions {
		if v != nil {
			out = append(out, convertVersion(v))
		}
	}
	return out
}
