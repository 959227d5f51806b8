package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"pkgforge/internal/session"
)

func TestDuplicateDetection(t *testing.T) {
	ctx := context.Background()

	t.Run("same name and version, different file", func(t *testing.T) {
		mgr, _, project := newTestManager()
		project.addPackage("app", "1.0.0", PackageTypeGeneric, time.Now(), "app-linux.tar.gz")

		if mgr.exists(ctx, project, "app", "1.0.0", "app-darwin.tar.gz") {
			t.Error("different file name should not be a duplicate")
		}
		if !mgr.exists(ctx, project, "app", "1.0.0", "app-linux.tar.gz") {
			t.Error("matching triple should be a duplicate")
		}
	})

	t.Run("same name, different version", func(t *testing.T) {
		mgr, _, project := newTestManager()
		project.addPackage("app", "1.0.0", PackageTypeGeneric, time.Now(), "app.tar.gz")

		if mgr.exists(ctx, project, "app", "2.0.0", "app.tar.gz") {
			t.Error("different version should not be a duplicate")
		}
	})

	t.Run("listing failure fails open", func(t *testing.T) {
		mgr, _, project := newTestManager()
		project.addPackage("app", "1.0.0", PackageTypeGeneric, time.Now(), "app.tar.gz")
		project.listErr = session.NewError(session.ErrRemote, "listing down")

		if mgr.exists(ctx, project, "app", "1.0.0", "app.tar.gz") {
			t.Error("a failed package listing must not report a duplicate")
		}
	})

	t.Run("file listing failure fails closed", func(t *testing.T) {
		mgr, _, project := newTestManager()
		project.addPackage("app", "1.0.0", PackageTypeGeneric, time.Now(), "app.tar.gz")
		project.filesErr = session.NewError(session.ErrRemote, "files down")

		if !mgr.exists(ctx, project, "app", "1.0.0", "other.tar.gz") {
			t.Error("a failed file listing on a matching record must report a duplicate")
		}
	})
}

func TestDuplicateFailOpenStillUploads(t *testing.T) {
	mgr, _, project := newTestManager()
	project.listErr = session.NewError(session.ErrRemote, "listing down")

	path := writeTempFile(t, "a.txt", "x")
	result, err := mgr.Upload(context.Background(), UploadRequest{ProjectID: "42", FilePath: path})
	if err != nil {
		t.Fatalf("upload should proceed when discovery fails: %v", err)
	}
	if project.uploadCalls != 1 {
		t.Errorf("expected one transmission, got %d", project.uploadCalls)
	}
	// Both duplicate-scan and id-resolution listings failed here.
	if result.PackageID != nil {
		t.Error("package id should be nil when listing is down")
	}
}

func TestDuplicateFailClosedBlocksUpload(t *testing.T) {
	mgr, _, project := newTestManager()
	project.addPackage("a", "1.0.0", PackageTypeGeneric, time.Now(), "a.txt")
	project.filesErr = session.NewError(session.ErrRemote, "files down")

	path := writeTempFile(t, "a.txt", "x")
	_, err := mgr.Upload(context.Background(), UploadRequest{ProjectID: "42", FilePath: path})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if project.uploadCalls != 0 {
		t.Error("nothing should be transmitted when the file check fails")
	}
}
