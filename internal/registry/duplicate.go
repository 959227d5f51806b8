package registry

import (
	"context"

	"pkgforge/internal/session"
)

// exists reports whether the (name, version, fileName) triple is already
// registered in the project.
//
// The two failure directions differ on purpose: when the package listing
// itself fails, no duplicate is reported so a transient discovery error
// does not block every upload; when the file listing of a matching
// record fails, a duplicate IS reported so an existing artifact is never
// silently overwritten.
func (p *Packages) exists(ctx context.Context, project session.Project, name, version, fileName string) bool {
	records, err := project.Packages(ctx, session.PackageListOptions{All: true})
	if err != nil {
		p.log.Debug().Err(err).
			Str("package", name).
			Str("version", version).
			Msg("duplicate scan: package listing failed, assuming no duplicate")
		return false
	}

	for _, rec := range records {
		if rec.Name != name || rec.Version != version {
			continue
		}

		files, err := project.PackageFiles(ctx, rec.ID)
		if err != nil {
			p.log.Debug().Err(err).
				Int("package_id", rec.ID).
				Msg("duplicate scan: file listing failed, assuming duplicate")
			return true
		}

		for _, f := range files {
			if f.FileName == fileName {
				return true
			}
		}
	}
	return false
}
