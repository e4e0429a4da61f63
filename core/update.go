package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/unascribed/FlexVer/go/flexver"
	"golang.org/x/sync/errgroup"
)

// DefaultUpdateConcurrency is the number of update checks running at once when not configured otherwise
const DefaultUpdateConcurrency = 5

// Resolver finds and applies updates for the entries of a pack
type Resolver struct {
	Pack *Pack
	// Updaters defaults to the global Updaters map
	Updaters    map[string]Updater
	Concurrency int
	// OnProgress is called after each finished check of CheckAll. It may be called concurrently.
	OnProgress func(done int, total int)
}

// UpdateCandidate is an available update of a single entry
type UpdateCandidate struct {
	Entry         *MetaFile
	CurrentLabel  string
	ProposedLabel string
	// Changelog is empty if the version has none
	Changelog string
	Version   CatalogVersion

	updater Updater
}

// IsFatal reports whether err should abort a whole command rather than a single entry
func IsFatal(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var f interface{ Fatal() bool }
	return errors.As(err, &f) && f.Fatal()
}

func (r *Resolver) updater(sourceType string) (Updater, bool) {
	updaters := r.Updaters
	if updaters == nil {
		updaters = Updaters
	}
	u, ok := updaters[sourceType]
	return u, ok
}

// CheckOne looks for an update of a single entry in the allowed channels.
// It returns nil if the entry ignores updates, cannot be updated or is up to date.
func (r *Resolver) CheckOne(ctx context.Context, mf *MetaFile, allowed []ReleaseChannel) (*UpdateCandidate, error) {
	if mf.Content.IgnoreUpdates {
		return nil, nil
	}

	switch src := mf.Content.Source.(type) {
	case RawSource:
		log.Warn("Entry has no update source", "entry", mf.RelPath)
		return nil, nil
	case ModrinthSource:
		updater, ok := r.updater(src.SourceType())
		if !ok {
			return nil, fmt.Errorf("no updater registered for %s sources", src.SourceType())
		}
		versions, err := updater.ListVersions(ctx, src.ModID, r.Pack.Manifest.Versions.Minecraft)
		if err != nil {
			return nil, fmt.Errorf("failed to list versions of %s: %w", mf.RelPath, err)
		}

		label := mf.Content.Version.Name
		_, semantic := ParseSemver(label)
		if !semantic {
			log.Warn("Version is not a semantic version, comparing publication dates instead", "entry", mf.RelPath, "version", label)
		}

		best := Recommend(label, src.VersionID, versions, allowed)
		if best == nil {
			return nil, nil
		}
		if !semantic && flexver.Compare(best.VersionString, label) < 0 {
			log.Warn("Newest version by publication date has a lower version number", "entry", mf.RelPath, "current", label, "proposed", best.VersionString)
		}
		return &UpdateCandidate{
			Entry:         mf,
			CurrentLabel:  label,
			ProposedLabel: best.VersionString,
			Changelog:     best.Changelog,
			Version:       *best,
			updater:       updater,
		}, nil
	default:
		return nil, fmt.Errorf("unknown source type %T in %s", src, mf.RelPath)
	}
}

// CheckAll runs CheckOne for every entry of the pack, at most Concurrency at a time.
// Failures of single entries are logged and skipped unless they are fatal.
// The result is in the order of the pack's entries.
func (r *Resolver) CheckAll(ctx context.Context, allowed []ReleaseChannel) ([]UpdateCandidate, error) {
	entries := r.Pack.MetaFiles
	results := make([]*UpdateCandidate, len(entries))

	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultUpdateConcurrency
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, mf := range entries {
		i, mf := i, mf
		g.Go(func() error {
			defer func() {
				n := done.Add(1)
				if r.OnProgress != nil {
					r.OnProgress(int(n), len(entries))
				}
			}()

			candidate, err := r.CheckOne(gctx, mf, allowed)
			if err != nil {
				if IsFatal(err) {
					return err
				}
				log.Warn("Skipping update check", "entry", mf.RelPath, "err", err)
				return nil
			}
			results[i] = candidate
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]UpdateCandidate, 0, len(results))
	for _, c := range slices.DeleteFunc(results, func(c *UpdateCandidate) bool { return c == nil }) {
		candidates = append(candidates, *c)
	}
	return candidates, nil
}

// Apply replaces the file record and version id of the entry with the proposed version and saves it
func (u *UpdateCandidate) Apply(ctx context.Context) error {
	src, ok := u.Entry.Content.Source.(ModrinthSource)
	if !ok {
		return fmt.Errorf("%s is not updatable", u.Entry.RelPath)
	}

	version := &u.Version
	if u.updater != nil {
		fresh, err := u.updater.GetVersion(ctx, u.Version.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch version %s: %w", u.Version.ID, err)
		}
		if fresh != nil {
			version = fresh
		}
	}

	record, err := FileRecordFor(*version)
	if err != nil {
		return err
	}
	u.Entry.Content.Version = record
	u.Entry.Content.Source = ModrinthSource{ModID: src.ModID, VersionID: version.ID}
	return u.Entry.Save()
}
