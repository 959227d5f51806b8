package registry

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"pkgforge/internal/session"
)

// PackageSummary is the projection of a package record returned by List.
type PackageSummary struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	PackageType string    `json:"package_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListFilter contains optional server-side filters for List.
type ListFilter struct {
	PackageType string
	PackageName string
}

// Packages provides high-level package operations on a forge: upload,
// download, listing, detail retrieval and deletion. Records are fetched
// fresh on every call, never cached.
type Packages struct {
	sess session.Session
	log  zerolog.Logger
}

// NewPackages creates a package manager over the given session.
func NewPackages(sess session.Session, log zerolog.Logger) *Packages {
	return &Packages{sess: sess, log: log}
}

// resolveProject turns a session project lookup into domain errors:
// an affirmative not-found becomes ErrNotFound, anything else becomes
// ErrOperation.
func (p *Packages) resolveProject(ctx context.Context, projectID string) (session.Project, error) {
	project, err := p.sess.Project(ctx, projectID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, wrapErr(ErrNotFound, err, "project %q not found", projectID)
		}
		return nil, wrapErr(ErrOperation, err, "failed to get project %q", projectID)
	}
	return project, nil
}

// List returns the project's packages, optionally filtered by package
// type and name. The full paginated listing is exhausted.
func (p *Packages) List(ctx context.Context, projectID string, filter ListFilter) ([]PackageSummary, error) {
	project, err := p.resolveProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	records, err := project.Packages(ctx, session.PackageListOptions{
		PackageType: filter.PackageType,
		PackageName: filter.PackageName,
		All:         true,
	})
	if err != nil {
		return nil, wrapErr(ErrOperation, err, "failed to list packages")
	}

	summaries := make([]PackageSummary, len(records))
	for i, rec := range records {
		summaries[i] = PackageSummary{
			ID:          rec.ID,
			Name:        rec.Name,
			Version:     rec.Version,
			PackageType: rec.PackageType,
			CreatedAt:   rec.CreatedAt,
		}
	}
	return summaries, nil
}

// Get returns the full attribute set of one package. Only the fields of
// PackageSummary are contractually present; everything else depends on
// the forge version.
func (p *Packages) Get(ctx context.Context, projectID string, packageID int) (map[string]any, error) {
	project, err := p.resolveProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	record, err := project.Package(ctx, packageID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, wrapErr(ErrNotFound, err, "package %d not found", packageID)
		}
		return nil, wrapErr(ErrOperation, err, "failed to get package %d", packageID)
	}
	return record.Attributes, nil
}

// Delete removes a package by id. The id is validated before any
// session call.
func (p *Packages) Delete(ctx context.Context, projectID string, packageID int) error {
	if packageID <= 0 {
		return validationErr("invalid package id %d: must be a positive integer", packageID)
	}

	project, err := p.resolveProject(ctx, projectID)
	if err != nil {
		return err
	}

	if err := project.DeletePackage(ctx, packageID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return wrapErr(ErrNotFound, err, "package %d not found or cannot be deleted", packageID)
		}
		return wrapErr(ErrOperation, err, "failed to delete package %d", packageID)
	}
	return nil
}

// Latest returns the highest version of the named package. Versions are
// ordered by semver; records whose version does not parse are skipped,
// and if none parse the most recently created record wins.
func (p *Packages) Latest(ctx context.Context, projectID, name string) (*PackageSummary, error) {
	summaries, err := p.List(ctx, projectID, ListFilter{PackageName: name})
	if err != nil {
		return nil, err
	}

	var matches []PackageSummary
	for _, s := range summaries {
		if s.Name == name {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return nil, wrapErr(ErrNotFound, nil, "package %q not found", name)
	}

	var best *PackageSummary
	var bestVersion *semver.Version
	for i := range matches {
		v, err := semver.NewVersion(matches[i].Version)
		if err != nil {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best = &matches[i]
			bestVersion = v
		}
	}
	if best != nil {
		return best, nil
	}

	// No semver-shaped version at all, fall back to newest-first.
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return &matches[0], nil
}
