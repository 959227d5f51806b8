package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"pkgforge/internal/session"
)

// Download fetches one artifact and writes it to disk, overwriting any
// existing file at the destination. An empty outputPath means the
// current working directory plus the artifact's file name; an
// outputPath naming an existing directory gets the file name appended;
// anything else is used verbatim. Returns the absolute written path.
func (p *Packages) Download(ctx context.Context, projectID, packageName, packageVersion, fileName, outputPath string) (string, error) {
	if strings.TrimSpace(packageName) == "" {
		return "", validationErr("package name cannot be empty")
	}
	if strings.TrimSpace(packageVersion) == "" {
		return "", validationErr("package version cannot be empty")
	}
	if strings.TrimSpace(fileName) == "" {
		return "", validationErr("file name cannot be empty")
	}

	dest := outputPath
	if dest == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", wrapErr(ErrOperation, err, "cannot resolve working directory")
		}
		dest = filepath.Join(cwd, fileName)
	} else if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, fileName)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", wrapErr(ErrOperation, err, "cannot create output directory")
	}

	project, err := p.resolveProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	content, err := project.DownloadGeneric(ctx, packageName, packageVersion, fileName)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return "", wrapErr(ErrNotFound, err,
				"package %q version %q with file %q not found",
				packageName, packageVersion, fileName)
		}
		return "", wrapErr(ErrOperation, err, "failed to download package")
	}

	// Write to a temporary sibling and rename, so a late failure never
	// leaves a truncated file at the destination.
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+fileName+".*")
	if err != nil {
		return "", wrapErr(ErrOperation, err, "failed to create temporary file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", wrapErr(ErrOperation, err, "failed to write artifact")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", wrapErr(ErrOperation, err, "failed to write artifact")
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", wrapErr(ErrOperation, err, "failed to move artifact into place")
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", wrapErr(ErrOperation, err, "cannot resolve destination path")
	}
	return abs, nil
}
