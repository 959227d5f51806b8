package session

import "time"

// PackageRecord is one package as reported by the forge. Attributes keeps
// the full decoded payload; the typed fields cover what callers rely on.
type PackageRecord struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	PackageType string         `json:"package_type"`
	CreatedAt   time.Time      `json:"created_at"`
	Attributes  map[string]any `json:"-"`
}

// PackageFile is one artifact attached to a package.
type PackageFile struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}

// PackageListOptions contains server-side filters for package listing.
type PackageListOptions struct {
	PackageType string
	PackageName string
	OrderBy     string
	Sort        string
	PerPage     int
	// All exhausts pagination instead of returning the first page.
	All bool
}

// ProjectListOptions contains filters for project listing.
type ProjectListOptions struct {
	Search  string
	Owned   bool
	OrderBy string
	Sort    string
	PerPage int
	All     bool
}

// ProjectInfo is one project as reported by the forge.
type ProjectInfo struct {
	ID                int            `json:"id"`
	Name              string         `json:"name"`
	Path              string         `json:"path"`
	PathWithNamespace string         `json:"path_with_namespace"`
	Description       string         `json:"description"`
	WebURL            string         `json:"web_url"`
	Visibility        string         `json:"visibility"`
	Archived          bool           `json:"archived"`
	StarCount         int            `json:"star_count"`
	ForksCount        int            `json:"forks_count"`
	Namespace         string         `json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	LastActivityAt    time.Time      `json:"last_activity_at"`
	Attributes        map[string]any `json:"-"`
}
