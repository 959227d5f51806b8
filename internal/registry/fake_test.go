package registry

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pkgforge/internal/session"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

// uploadedArtifact captures what a fake project received.
type uploadedArtifact struct {
	name     string
	version  string
	fileName string
	status   string
	content  []byte
}

// fakeProject is an in-memory session.Project recording every call.
type fakeProject struct {
	info    session.ProjectInfo
	records []session.PackageRecord
	files   map[int][]session.PackageFile
	nextID  int

	listErr             error
	failListAfterUpload bool
	filesErr            error
	deleteErr           error
	uploadErr           error
	downloadContent     []byte
	downloadErr         error

	listCalls     int
	filesCalls    int
	uploadCalls   int
	downloadCalls int
	deleteCalls   int

	lastUpload uploadedArtifact
}

func newFakeProject(id int) *fakeProject {
	return &fakeProject{
		info:   session.ProjectInfo{ID: id, PathWithNamespace: "group/project"},
		files:  make(map[int][]session.PackageFile),
		nextID: 1,
	}
}

func (p *fakeProject) ID() int                   { return p.info.ID }
func (p *fakeProject) PathWithNamespace() string { return p.info.PathWithNamespace }
func (p *fakeProject) Info() session.ProjectInfo { return p.info }

func (p *fakeProject) addPackage(name, version, packageType string, createdAt time.Time, fileNames ...string) int {
	id := p.nextID
	p.nextID++
	p.records = append(p.records, session.PackageRecord{
		ID:          id,
		Name:        name,
		Version:     version,
		PackageType: packageType,
		CreatedAt:   createdAt,
		Attributes: map[string]any{
			"id":           float64(id),
			"name":         name,
			"version":      version,
			"package_type": packageType,
		},
	})
	for i, fn := range fileNames {
		p.files[id] = append(p.files[id], session.PackageFile{ID: id*100 + i, FileName: fn, Size: 1})
	}
	return id
}

func (p *fakeProject) Packages(ctx context.Context, opts session.PackageListOptions) ([]session.PackageRecord, error) {
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	if p.failListAfterUpload && p.uploadCalls > 0 {
		return nil, session.NewError(session.ErrRemote, "listing unavailable")
	}

	var out []session.PackageRecord
	for _, rec := range p.records {
		if opts.PackageType != "" && rec.PackageType != opts.PackageType {
			continue
		}
		if opts.PackageName != "" && !strings.Contains(rec.Name, opts.PackageName) {
			continue
		}
		out = append(out, rec)
	}

	if opts.OrderBy == "created_at" && opts.Sort == "desc" {
		sort.Slice(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

func (p *fakeProject) Package(ctx context.Context, id int) (session.PackageRecord, error) {
	for _, rec := range p.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return session.PackageRecord{}, session.NewError(session.ErrNotFound, "package %d", id)
}

func (p *fakeProject) DeletePackage(ctx context.Context, id int) error {
	p.deleteCalls++
	if p.deleteErr != nil {
		return p.deleteErr
	}
	for i, rec := range p.records {
		if rec.ID == id {
			p.records = append(p.records[:i], p.records[i+1:]...)
			return nil
		}
	}
	return session.NewError(session.ErrNotFound, "package %d", id)
}

func (p *fakeProject) PackageFiles(ctx context.Context, id int) ([]session.PackageFile, error) {
	p.filesCalls++
	if p.filesErr != nil {
		return nil, p.filesErr
	}
	return p.files[id], nil
}

func (p *fakeProject) UploadGeneric(ctx context.Context, name, version, fileName string, content io.Reader, status string) error {
	p.uploadCalls++
	if p.uploadErr != nil {
		return p.uploadErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	p.lastUpload = uploadedArtifact{name: name, version: version, fileName: fileName, status: status, content: data}
	p.addPackage(name, version, PackageTypeGeneric, time.Now(), fileName)
	return nil
}

func (p *fakeProject) DownloadGeneric(ctx context.Context, name, version, fileName string) ([]byte, error) {
	p.downloadCalls++
	if p.downloadErr != nil {
		return nil, p.downloadErr
	}
	return p.downloadContent, nil
}

// fakeSession hands out fake projects by id or path.
type fakeSession struct {
	projects   map[string]*fakeProject
	projectErr error

	allProjects []session.ProjectInfo
	projectsErr error

	projectCalls    int
	projectsCalls   int
	lastProjectOpts session.ProjectListOptions
}

func (s *fakeSession) Project(ctx context.Context, idOrPath string) (session.Project, error) {
	s.projectCalls++
	if s.projectErr != nil {
		return nil, s.projectErr
	}
	p, ok := s.projects[idOrPath]
	if !ok {
		return nil, session.NewError(session.ErrNotFound, "project %q", idOrPath)
	}
	return p, nil
}

func (s *fakeSession) Projects(ctx context.Context, opts session.ProjectListOptions) ([]session.ProjectInfo, error) {
	s.projectsCalls++
	s.lastProjectOpts = opts
	if s.projectsErr != nil {
		return nil, s.projectsErr
	}

	var out []session.ProjectInfo
	for _, p := range s.allProjects {
		if opts.Search != "" {
			haystack := strings.ToLower(p.Name + " " + p.PathWithNamespace + " " + p.Description)
			if !strings.Contains(haystack, strings.ToLower(opts.Search)) {
				continue
			}
		}
		out = append(out, p)
	}
	if opts.PerPage > 0 && !opts.All && len(out) > opts.PerPage {
		out = out[:opts.PerPage]
	}
	return out, nil
}

// newTestManager returns a package manager wired to a fake session with
// one project registered under id "42".
func newTestManager() (*Packages, *fakeSession, *fakeProject) {
	project := newFakeProject(7)
	sess := &fakeSession{projects: map[string]*fakeProject{"42": project}}
	return NewPackages(sess, nopLogger()), sess, project
}
