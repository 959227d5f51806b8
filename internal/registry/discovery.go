package registry

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"pkgforge/internal/session"
)

// SearchField selects which project attribute Search matches against.
type SearchField string

const (
	SearchName        SearchField = "name"
	SearchPath        SearchField = "path"
	SearchDescription SearchField = "description"
)

// Discovery finds projects on the forge, so callers don't have to
// remember exact project paths.
type Discovery struct {
	sess session.Session
	log  zerolog.Logger
}

// NewDiscovery creates a project discovery manager over the given session.
func NewDiscovery(sess session.Session, log zerolog.Logger) *Discovery {
	return &Discovery{sess: sess, log: log}
}

// ListAll returns every project owned by the session's credential.
func (d *Discovery) ListAll(ctx context.Context) ([]session.ProjectInfo, error) {
	projects, err := d.sess.Projects(ctx, session.ProjectListOptions{
		Owned: true,
		All:   true,
	})
	if err != nil {
		return nil, wrapErr(ErrOperation, err, "failed to list projects")
	}
	return projects, nil
}

// Search finds projects matching query. The forge search is broad, so
// results are additionally filtered client-side against the requested
// field; an unknown field keeps every server-side match.
func (d *Discovery) Search(ctx context.Context, query string, in SearchField) ([]session.ProjectInfo, error) {
	projects, err := d.sess.Projects(ctx, session.ProjectListOptions{
		Search:  query,
		OrderBy: "last_activity_at",
		Sort:    "desc",
		All:     true,
	})
	if err != nil {
		return nil, wrapErr(ErrOperation, err, "failed to search projects")
	}

	q := strings.ToLower(query)
	var results []session.ProjectInfo
	for _, p := range projects {
		switch in {
		case SearchName:
			if strings.Contains(strings.ToLower(p.Name), q) {
				results = append(results, p)
			}
		case SearchPath:
			if strings.Contains(strings.ToLower(p.PathWithNamespace), q) {
				results = append(results, p)
			}
		case SearchDescription:
			if strings.Contains(strings.ToLower(p.Description), q) {
				results = append(results, p)
			}
		default:
			results = append(results, p)
		}
	}
	return results, nil
}

// ByNamespace returns every project under a namespace or group,
// including nested subgroups.
func (d *Discovery) ByNamespace(ctx context.Context, namespace string) ([]session.ProjectInfo, error) {
	projects, err := d.sess.Projects(ctx, session.ProjectListOptions{
		OrderBy: "name",
		Sort:    "asc",
		All:     true,
	})
	if err != nil {
		return nil, wrapErr(ErrOperation, err, "failed to list projects by namespace")
	}

	ns := strings.ToLower(namespace)
	var results []session.ProjectInfo
	for _, p := range projects {
		if strings.ToLower(p.Namespace) == ns ||
			strings.HasPrefix(strings.ToLower(p.PathWithNamespace), ns+"/") {
			results = append(results, p)
		}
	}
	return results, nil
}

// Recent returns the most recently active projects, newest first.
func (d *Discovery) Recent(ctx context.Context, limit int) ([]session.ProjectInfo, error) {
	projects, err := d.sess.Projects(ctx, session.ProjectListOptions{
		OrderBy: "last_activity_at",
		Sort:    "desc",
		PerPage: limit,
	})
	if err != nil {
		return nil, wrapErr(ErrOperation, err, "failed to list recent projects")
	}
	if limit > 0 && len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

// ProjectInfo resolves one project and returns its attributes.
func (d *Discovery) ProjectInfo(ctx context.Context, idOrPath string) (session.ProjectInfo, error) {
	project, err := d.sess.Project(ctx, idOrPath)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return session.ProjectInfo{}, wrapErr(ErrNotFound, err, "project %q not found", idOrPath)
		}
		return session.ProjectInfo{}, wrapErr(ErrOperation, err, "failed to get project %q", idOrPath)
	}
	return project.Info(), nil
}
