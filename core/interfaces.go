package core

import "context"

// Updaters stores the catalog backends that mod entries can be updated from, keyed by source type.
// Backends register themselves here in their init function.
var Updaters = make(map[string]Updater)

// Updater fetches version data for one source type.
// Both methods return nil without an error when the project or version does not exist.
type Updater interface {
	// ListVersions returns every version of the project compatible with the pack's loader and gameVersion
	ListVersions(ctx context.Context, projectID string, gameVersion string) ([]CatalogVersion, error)
	// GetVersion fetches a single version by id
	GetVersion(ctx context.Context, versionID string) (*CatalogVersion, error)
}
