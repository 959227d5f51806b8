package session

import (
	"context"
	"io"
)

// Session is an authenticated handle onto a forge. It resolves projects
// and lists the projects the credential can see; everything package
// related happens through the resolved Project.
type Session interface {
	// Project resolves a project by numeric id or slash-separated path.
	Project(ctx context.Context, idOrPath string) (Project, error)

	// Projects lists projects visible to the session.
	Projects(ctx context.Context, opts ProjectListOptions) ([]ProjectInfo, error)
}

// Project scopes package operations to one resolved project.
type Project interface {
	ID() int
	PathWithNamespace() string

	// Info returns the project's attributes as resolved.
	Info() ProjectInfo

	// Packages lists the project's packages, exhausting pagination
	// when opts.All is set.
	Packages(ctx context.Context, opts PackageListOptions) ([]PackageRecord, error)

	// Package fetches a single package by id.
	Package(ctx context.Context, packageID int) (PackageRecord, error)

	// DeletePackage removes a package by id.
	DeletePackage(ctx context.Context, packageID int) error

	// PackageFiles lists the artifacts attached to a package.
	PackageFiles(ctx context.Context, packageID int) ([]PackageFile, error)

	// UploadGeneric puts one artifact into the generic package registry.
	UploadGeneric(ctx context.Context, name, version, fileName string, content io.Reader, status string) error

	// DownloadGeneric fetches one artifact's bytes from the generic
	// package registry.
	DownloadGeneric(ctx context.Context, name, version, fileName string) ([]byte, error)
}
