package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const apiPrefix = "/api/v4"

// defaultPerPage matches the forge's listing page size.
const defaultPerPage = 20

// Options configures an HTTPSession. Exactly one of PrivateToken,
// JobToken or OAuthToken should be set; the zero value yields an
// unauthenticated session.
type Options struct {
	PrivateToken string
	JobToken     string
	OAuthToken   string

	// HTTPClient overrides the default 30s-timeout client.
	HTTPClient *http.Client

	// Logger receives per-request debug logs. Silent when nil.
	Logger *zerolog.Logger
}

// HTTPSession talks to a forge's REST API and hands out project handles.
type HTTPSession struct {
	baseURL      string
	privateToken string
	jobToken     string
	httpClient   *http.Client
	log          zerolog.Logger
}

// Ensure HTTPSession implements Session.
var _ Session = (*HTTPSession)(nil)

// New creates a session against the forge at baseURL.
func New(baseURL string, opts Options) *HTTPSession {
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		if opts.OAuthToken != "" {
			src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.OAuthToken})
			httpClient = oauth2.NewClient(context.Background(), src)
		} else {
			httpClient = &http.Client{}
		}
		httpClient.Timeout = 30 * time.Second
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &HTTPSession{
		baseURL:      baseURL,
		privateToken: opts.PrivateToken,
		jobToken:     opts.JobToken,
		httpClient:   httpClient,
		log:          log,
	}
}

// Project resolves a project by numeric id or slash-separated path.
func (s *HTTPSession) Project(ctx context.Context, idOrPath string) (Project, error) {
	path := apiPrefix + "/projects/" + url.PathEscape(idOrPath)

	resp, err := s.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.errorFromResponse(resp, fmt.Sprintf("project %q", idOrPath))
	}

	var attrs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}

	info := mapToProjectInfo(attrs)
	return &httpProject{sess: s, info: info}, nil
}

// Projects lists projects visible to the session.
func (s *HTTPSession) Projects(ctx context.Context, opts ProjectListOptions) ([]ProjectInfo, error) {
	params := url.Values{}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if opts.Owned {
		params.Set("owned", "true")
	}
	if opts.OrderBy != "" {
		params.Set("order_by", opts.OrderBy)
	}
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}

	raw, err := s.paginate(ctx, apiPrefix+"/projects", params, opts.PerPage, opts.All)
	if err != nil {
		return nil, err
	}

	projects := make([]ProjectInfo, len(raw))
	for i, m := range raw {
		projects[i] = mapToProjectInfo(m)
	}
	return projects, nil
}

// httpProject is a resolved project handle bound to its session.
type httpProject struct {
	sess *HTTPSession
	info ProjectInfo
}

var _ Project = (*httpProject)(nil)

func (p *httpProject) ID() int                   { return p.info.ID }
func (p *httpProject) PathWithNamespace() string { return p.info.PathWithNamespace }
func (p *httpProject) Info() ProjectInfo         { return p.info }

func (p *httpProject) apiPath(suffix string) string {
	return fmt.Sprintf("%s/projects/%d%s", apiPrefix, p.info.ID, suffix)
}

func (p *httpProject) Packages(ctx context.Context, opts PackageListOptions) ([]PackageRecord, error) {
	params := url.Values{}
	if opts.PackageType != "" {
		params.Set("package_type", opts.PackageType)
	}
	if opts.PackageName != "" {
		params.Set("package_name", opts.PackageName)
	}
	if opts.OrderBy != "" {
		params.Set("order_by", opts.OrderBy)
	}
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}

	raw, err := p.sess.paginate(ctx, p.apiPath("/packages"), params, opts.PerPage, opts.All)
	if err != nil {
		return nil, err
	}

	records := make([]PackageRecord, len(raw))
	for i, m := range raw {
		records[i] = mapToPackageRecord(m)
	}
	return records, nil
}

func (p *httpProject) Package(ctx context.Context, packageID int) (PackageRecord, error) {
	path := p.apiPath(fmt.Sprintf("/packages/%d", packageID))

	resp, err := p.sess.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return PackageRecord{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PackageRecord{}, p.sess.errorFromResponse(resp, fmt.Sprintf("package %d", packageID))
	}

	var attrs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return PackageRecord{}, fmt.Errorf("failed to decode package: %w", err)
	}
	return mapToPackageRecord(attrs), nil
}

func (p *httpProject) DeletePackage(ctx context.Context, packageID int) error {
	path := p.apiPath(fmt.Sprintf("/packages/%d", packageID))

	resp, err := p.sess.do(ctx, http.MethodDelete, path, nil, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return p.sess.errorFromResponse(resp, fmt.Sprintf("package %d", packageID))
	}
	return nil
}

func (p *httpProject) PackageFiles(ctx context.Context, packageID int) ([]PackageFile, error) {
	path := p.apiPath(fmt.Sprintf("/packages/%d/package_files", packageID))

	raw, err := p.sess.paginate(ctx, path, nil, 0, true)
	if err != nil {
		return nil, err
	}

	files := make([]PackageFile, len(raw))
	for i, m := range raw {
		files[i] = mapToPackageFile(m)
	}
	return files, nil
}

func (p *httpProject) UploadGeneric(ctx context.Context, name, version, fileName string, content io.Reader, status string) error {
	path := p.genericPath(name, version, fileName)

	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}

	resp, err := p.sess.do(ctx, http.MethodPut, path, params, content, "application/octet-stream")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return p.sess.errorFromResponse(resp, fmt.Sprintf("upload %s/%s/%s", name, version, fileName))
	}
	return nil
}

func (p *httpProject) DownloadGeneric(ctx context.Context, name, version, fileName string) ([]byte, error) {
	path := p.genericPath(name, version, fileName)

	resp, err := p.sess.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.sess.errorFromResponse(resp, fmt.Sprintf("download %s/%s/%s", name, version, fileName))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(ErrNetwork, "failed to read artifact body: %v", err)
	}
	return content, nil
}

func (p *httpProject) genericPath(name, version, fileName string) string {
	return p.apiPath(fmt.Sprintf("/packages/generic/%s/%s/%s",
		url.PathEscape(name), url.PathEscape(version), url.PathEscape(fileName)))
}

// paginate fetches a list endpoint, following x-next-page until the
// server reports no further page (or after the first page when !all).
func (s *HTTPSession) paginate(ctx context.Context, path string, params url.Values, perPage int, all bool) ([]map[string]any, error) {
	if params == nil {
		params = url.Values{}
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	params.Set("per_page", strconv.Itoa(perPage))

	var out []map[string]any
	page := 1
	for {
		params.Set("page", strconv.Itoa(page))

		resp, err := s.do(ctx, http.MethodGet, path, params, nil, "")
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			err := s.errorFromResponse(resp, path)
			resp.Body.Close()
			return nil, err
		}

		var items []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		next := resp.Header.Get("x-next-page")
		resp.Body.Close()

		out = append(out, items...)

		if !all || next == "" || len(items) == 0 {
			return out, nil
		}
		nextPage, err := strconv.Atoi(next)
		if err != nil || nextPage <= page {
			return out, nil
		}
		page = nextPage
	}
}

// do issues one request with authentication and context.
func (s *HTTPSession) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string) (*http.Response, error) {
	reqURL := s.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// OAuth sessions authenticate through the oauth2 transport instead.
	if s.privateToken != "" {
		req.Header.Set("PRIVATE-TOKEN", s.privateToken)
	} else if s.jobToken != "" {
		req.Header.Set("JOB-TOKEN", s.jobToken)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	requestID := uuid.NewString()
	s.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", reqURL).
		Msg("forge request")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request canceled: %w", ctx.Err())
		}
		return nil, NewError(ErrNetwork, "%s %s: %v", method, path, err)
	}

	s.log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("forge response")

	return resp, nil
}

// errorFromResponse translates a non-success status into a transport error.
func (s *HTTPSession) errorFromResponse(resp *http.Response, what string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := strings.TrimSpace(string(body))

	switch resp.StatusCode {
	case http.StatusNotFound:
		return NewError(ErrNotFound, "%s", what)
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewError(ErrUnauthorized, "%s (status %d)", what, resp.StatusCode)
	default:
		return NewError(ErrRemote, "%s failed (status %d): %s", what, resp.StatusCode, detail)
	}
}
