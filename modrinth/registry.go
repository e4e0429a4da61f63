package modrinth

import (
	"context"
	"fmt"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/horizr/horizr/core"
)

// The only loader horizr packs support
const loader = "fabric"

// Registry looks up mods and versions on Modrinth. Lookups of missing projects or versions return nil.
type Registry struct {
	client *Client
}

func NewRegistry(client *Client) *Registry {
	return &Registry{client: client}
}

// SearchPage is one page of search results
type SearchPage struct {
	Total int
	Mods  []core.CatalogMod
}

// SearchMods searches Fabric mods available for gameVersion
func (r *Registry) SearchMods(ctx context.Context, gameVersion string, query string, limit int, offset int) (*SearchPage, error) {
	c, api := r.client.newCall(ctx)
	res, err := api.Projects.Search(&modrinthApi.SearchOptions{
		Query:  query,
		Limit:  limit,
		Offset: offset,
		Index:  "relevance",
		Facets: [][]string{
			{"categories:" + loader},
			{"versions:" + gameVersion},
			{"project_type:mod"},
		},
	})
	if err := c.result(err); err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", query, err)
	}
	page := &SearchPage{}
	if c.notFound || res == nil {
		return page, nil
	}
	page.Total = int(val(res.TotalHits))
	for _, hit := range res.Hits {
		if hit != nil {
			page.Mods = append(page.Mods, convertSearchResult(hit))
		}
	}
	return page, nil
}

// GetMod fetches a project by id or slug
func (r *Registry) GetMod(ctx context.Context, idOrSlug string) (*core.CatalogMod, error) {
	c, api := r.client.newCall(ctx)
	project, err := api.Projects.Get(idOrSlug)
	if err := c.result(err); err != nil {
		return nil, fmt.Errorf("failed to fetch mod %s: %w", idOrSlug, err)
	}
	if c.notFound || project == nil {
		return nil, nil
	}
	return convertProject(project), nil
}

// ListVersions returns the Fabric versions of a project supporting gameVersion.
// An empty gameVersion lists versions for every game version.
func (r *Registry) ListVersions(ctx context.Context, idOrSlug string, gameVersion string) ([]core.CatalogVersion, error) {
	opts := modrinthApi.ListVersionsOptions{Loaders: []string{loader}}
	if gameVersion != "" {
		opts.GameVersions = []string{gameVersion}
	}

	c, api := r.client.newCall(ctx)
	versions, err := api.Versions.ListVersions(idOrSlug, opts)
	if err := c.result(err); err != nil {
		return nil, fmt.Errorf("failed to list versions of %s: %w", idOrSlug, err)
	}
	if c.notFound {
		return nil, nil
	}
	return convertVersions(versions), nil
}

// GetVersion fetches a version by id
func (r *Registry) GetVersion(ctx context.Context, versionID string) (*core.CatalogVersion, error) {
	c, api := r.client.newCall(ctx)
	version, err := api.Versions.Get(versionID)
	if err := c.result(err); err != nil {
		return nil, fmt.Errorf("failed to fetch version %s: %w", versionID, err)
	}
	if c.notFound || version == nil {
		return nil, nil
	}
	converted := convertVersion(version)
	return &converted, nil
}
