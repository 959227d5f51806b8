package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pkgforge/internal/session"
)

// Package type accepting arbitrary content. The only type the upload
// pipeline currently implements.
const PackageTypeGeneric = "generic"

const (
	defaultVersion = "1.0.0"
	defaultStatus  = "default"
)

// UploadRequest describes one artifact upload. Zero-valued optional
// fields receive defaults: FileName from the local file's base name,
// PackageName from the base name with its first extension segment
// stripped, Version "1.0.0", PackageType "generic", Status "default".
type UploadRequest struct {
	ProjectID   string
	FilePath    string
	PackageName string
	Version     string
	FileName    string
	PackageType string
	Status      string

	// Progress, when set, instruments the transfer. The whole file is
	// then read into memory once and streamed through a reader that
	// reports cumulative bytes on every chunk.
	Progress ProgressFunc
}

// UploadResult reports a completed upload. PackageID is resolved on a
// best-effort basis and stays nil when resolution fails.
type UploadResult struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	PackageName    string    `json:"package_name"`
	PackageVersion string    `json:"package_version"`
	PackageID      *int      `json:"package_id"`
	FileName       string    `json:"file_name"`
	FileSize       int64     `json:"file_size"`
	ProjectID      int       `json:"project_id"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// Upload validates the request, refuses duplicates, transmits the
// artifact and returns the result record. The local file is checked
// before any network call; the duplicate scan is the only read-only
// round trip permitted before transmission.
func (p *Packages) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	info, err := os.Stat(req.FilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, validationErr("file not found: %s", req.FilePath)
		}
		return nil, wrapErr(ErrValidation, err, "cannot stat file %s", req.FilePath)
	}
	if !info.Mode().IsRegular() {
		return nil, validationErr("path is not a file: %s", req.FilePath)
	}

	base := filepath.Base(req.FilePath)

	fileName := req.FileName
	if fileName == "" {
		fileName = base
	}
	name := req.PackageName
	if name == "" {
		name = strings.SplitN(base, ".", 2)[0]
	}
	version := req.Version
	if version == "" {
		version = defaultVersion
	}

	if strings.TrimSpace(name) == "" {
		return nil, validationErr("package name cannot be empty")
	}
	if strings.TrimSpace(version) == "" {
		return nil, validationErr("package version cannot be empty")
	}

	packageType := req.PackageType
	if packageType == "" {
		packageType = PackageTypeGeneric
	}
	status := req.Status
	if status == "" {
		status = defaultStatus
	}

	project, err := p.resolveProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if p.exists(ctx, project, name, version, fileName) {
		return nil, validationErr(
			"package %q version %q with file %q already exists; use a different version or file name",
			name, version, fileName)
	}

	if packageType != PackageTypeGeneric {
		return nil, wrapErr(ErrNotImplemented, nil,
			"package type %q not yet supported; only %q is implemented",
			packageType, PackageTypeGeneric)
	}

	return p.uploadGeneric(ctx, project, req.FilePath, name, version, fileName, status, req.Progress, info.Size())
}

// uploadGeneric transmits the artifact. With a progress observer the
// file content is buffered in memory and streamed through the progress
// reader; without one it streams straight from disk.
func (p *Packages) uploadGeneric(ctx context.Context, project session.Project, filePath, name, version, fileName, status string, progress ProgressFunc, size int64) (*UploadResult, error) {
	var uploadErr error
	if progress != nil {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, wrapErr(ErrUnexpected, err, "failed to read %s", filePath)
		}
		uploadErr = project.UploadGeneric(ctx, name, version, fileName, newProgressReader(content, progress), status)
	} else {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, wrapErr(ErrUnexpected, err, "failed to open %s", filePath)
		}
		uploadErr = project.UploadGeneric(ctx, name, version, fileName, f, status)
		f.Close()
	}

	if uploadErr != nil {
		var sessErr *session.Error
		if errors.As(uploadErr, &sessErr) {
			return nil, wrapErr(ErrOperation, uploadErr, "upload failed")
		}
		return nil, wrapErr(ErrUnexpected, uploadErr, "unexpected error during upload")
	}

	return &UploadResult{
		Success:        true,
		Message:        "package uploaded successfully",
		PackageName:    name,
		PackageVersion: version,
		PackageID:      p.resolvePackageID(ctx, project, name, version),
		FileName:       fileName,
		FileSize:       size,
		ProjectID:      project.ID(),
		UploadedAt:     time.Now(),
	}, nil
}

// resolvePackageID finds the freshly created package's id by re-listing
// the project's packages newest-first. Best effort: any failure yields
// nil, never an error.
func (p *Packages) resolvePackageID(ctx context.Context, project session.Project, name, version string) *int {
	records, err := project.Packages(ctx, session.PackageListOptions{
		PackageName: name,
		OrderBy:     "created_at",
		Sort:        "desc",
	})
	if err != nil {
		p.log.Debug().Err(err).
			Str("package", name).
			Msg("could not resolve package id after upload")
		return nil
	}

	for _, rec := range records {
		if rec.Name == name && rec.Version == version {
			id := rec.ID
			return &id
		}
	}
	return nil
}
