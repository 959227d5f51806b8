package registry

import (
	"context"

	"pkgforge/internal/session"
)

// Placeholder managers for the forge surfaces the client does not
// implement yet. Every operation returns an ErrNotImplemented-kind
// error naming the operation.

// ReleaseAsset is a link attached to a release.
type ReleaseAsset struct {
	Name string
	URL  string
}

// Releases manages project releases.
type Releases struct {
	sess session.Session
}

func (r *Releases) Create(ctx context.Context, projectID, tagName, name, description string, assets []ReleaseAsset) (map[string]any, error) {
	return nil, notImplemented("release creation")
}

func (r *Releases) List(ctx context.Context, projectID string) ([]map[string]any, error) {
	return nil, notImplemented("release listing")
}

func (r *Releases) Get(ctx context.Context, projectID, tagName string) (map[string]any, error) {
	return nil, notImplemented("get release")
}

func (r *Releases) Update(ctx context.Context, projectID, tagName, name, description string) (map[string]any, error) {
	return nil, notImplemented("release update")
}

// Pipelines manages CI pipelines.
type Pipelines struct {
	sess session.Session
}

func (p *Pipelines) Trigger(ctx context.Context, projectID, ref string, variables map[string]string) (map[string]any, error) {
	return nil, notImplemented("pipeline trigger")
}

func (p *Pipelines) Status(ctx context.Context, projectID string, pipelineID int) (string, error) {
	return "", notImplemented("get pipeline status")
}

func (p *Pipelines) ListRecent(ctx context.Context, projectID string, limit int) ([]map[string]any, error) {
	return nil, notImplemented("pipeline listing")
}

// Branches manages repository branches and tags.
type Branches struct {
	sess session.Session
}

func (b *Branches) Create(ctx context.Context, projectID, branch, ref string) (map[string]any, error) {
	return nil, notImplemented("branch creation")
}

func (b *Branches) CreateTag(ctx context.Context, projectID, tag, ref, message string) (map[string]any, error) {
	return nil, notImplemented("tag creation")
}

func (b *Branches) List(ctx context.Context, projectID string) ([]map[string]any, error) {
	return nil, notImplemented("branch listing")
}
