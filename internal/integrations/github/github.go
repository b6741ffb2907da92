package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"github.com/vlatan/repo-sitemap/internal/cache"
	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/trail"
	"golang.org/x/oauth2"
)

const maxMessageLength = 300

var defaultBranches = []string{"main", "master"}

// Possible outcomes of a single branch attempt
var (
	errTransport = errors.New("transport failure")
	errNoTree    = errors.New("no tree in response")
	errEmptyTree = errors.New("no files in tree")
)

// statusError is a non-200 answer from the API
type statusError struct {
	Code    int
	Message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Mode string `json:"mode"`
	Sha  string `json:"sha"`
	Size int64  `json:"size,omitempty"`
}

type treeResponse struct {
	Sha       string      `json:"sha"`
	Tree      []treeEntry `json:"tree"` // nil when the key is missing
	Truncated bool        `json:"truncated"`
	Message   string      `json:"message"`
}

type Service struct {
	client    *http.Client
	apiURL    string
	rawURL    string
	fallbacks []string
	cache     cache.Service
	cacheTTL  time.Duration
	policy    *bluemonday.Policy
}

// New creates a GitHub tree listing service.
// The cache is optional, pass nil to always hit the API.
func New(ctx context.Context, cfg *config.Config, c cache.Service) *Service {

	client := &http.Client{}
	if cfg.GithubToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GithubToken})
		client = oauth2.NewClient(ctx, ts)
	}
	client.Timeout = cfg.GithubTimeout

	fallbacks := cfg.GithubFallbackBranches
	if len(fallbacks) == 0 {
		fallbacks = defaultBranches
	}

	return &Service{
		client:    client,
		apiURL:    cfg.GithubAPIURL,
		rawURL:    cfg.GithubRawURL,
		fallbacks: fallbacks,
		cache:     c,
		cacheTTL:  cfg.CacheTimeout,
		policy:    bluemonday.StrictPolicy(),
	}
}

// Candidates returns the branches to try for a ref, in order.
// An explicit branch is tried alone.
func (s *Service) Candidates(ref *models.RepoRef) []string {
	if ref.HasBranch() {
		return []string{ref.Branch}
	}
	return append([]string(nil), s.fallbacks...)
}

// ListFiles returns the raw content URLs of every file in the repository,
// from the first candidate branch having at least one file.
func (s *Service) ListFiles(ctx context.Context, ref *models.RepoRef, tr *trail.Trail) ([]string, error) {

	branch := ref.Branch
	if branch == "" {
		branch = "*"
	}
	cacheKey := fmt.Sprintf("tree:%s@%s", ref.FullName(), branch)

	cached := cache.Cached(ctx, s.cache, cacheKey)
	urls, err := cache.GetItems(ctx, s.cache, cacheKey, s.cacheTTL, func() ([]string, error) {
		cached = false
		return s.listFiles(ctx, ref, tr)
	})

	if err == nil && cached {
		tr.Addf("Using cached file listing for %s (%d files)", ref, len(urls))
	}

	return urls, err
}

func (s *Service) listFiles(ctx context.Context, ref *models.RepoRef, tr *trail.Trail) ([]string, error) {

	candidates := s.Candidates(ref)
	emptySeen, transportOnly := false, true

	for _, branch := range candidates {

		urls, err := s.fetchBranch(ctx, ref, branch, tr)
		if err == nil {
			return urls, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, models.NewError(
				models.RepositoryUnreachable, ctxErr,
				"Listing %s was interrupted.", ref.FullName(),
			)
		}

		emptySeen = emptySeen || errors.Is(err, errEmptyTree)
		transportOnly = transportOnly && errors.Is(err, errTransport)
	}

	tried := strings.Join(candidates, ", ")

	switch {
	case emptySeen:
		return nil, models.NewError(
			models.EmptyRepository, nil,
			"No files were found in the repository. Tried branches: %s.", tried,
		)
	case transportOnly:
		return nil, models.NewError(
			models.RepositoryUnreachable, nil,
			"Could not reach GitHub. Tried branches: %s. Please try again later.", tried,
		)
	default:
		return nil, models.NewError(
			models.RepositoryNotFound, nil,
			"Could not access repository content. Tried branches: %s. "+
				"Please ensure the repository exists, is public, and contains files.",
			tried,
		)
	}
}

// fetchBranch lists the tree of a single branch.
// Every outcome is recorded on the trail.
func (s *Service) fetchBranch(ctx context.Context, ref *models.RepoRef, branch string, tr *trail.Trail) ([]string, error) {

	apiURL := fmt.Sprintf(
		"%s/repos/%s/%s/git/trees/%s?recursive=1",
		s.apiURL, url.PathEscape(ref.Owner), url.PathEscape(ref.Repo), escapePath(branch),
	)
	tr.Addf("Trying API URL: %s", apiURL)

	tree, err := s.getTree(ctx, apiURL)

	var se *statusError
	switch {
	case errors.As(err, &se):
		tr.Addf(
			"Branch %s not accessible (Status: %d, Response: %s), trying next option...",
			branch, se.Code, se.Message,
		)
		return nil, err
	case err != nil:
		tr.Addf("Error processing branch %s: %v", branch, err)
		return nil, err
	}

	tr.Addf("Successfully accessed branch: %s", branch)

	if tree.Tree == nil {
		tr.Addf("No 'tree' found in response for branch %s", branch)
		return nil, errNoTree
	}

	if tree.Truncated {
		tr.Addf("Listing of branch %s is truncated, some files are missing", branch)
	}

	baseRawURL := fmt.Sprintf(
		"%s/%s/%s/%s/",
		s.rawURL, url.PathEscape(ref.Owner), url.PathEscape(ref.Repo), escapePath(branch),
	)
	tr.Addf("Using base raw URL: %s", baseRawURL)

	urls := lo.FilterMap(tree.Tree, func(e treeEntry, _ int) (string, bool) {
		return baseRawURL + escapePath(e.Path), e.Type == "blob"
	})

	if len(urls) == 0 {
		tr.Addf("No files found in branch %s, trying next option...", branch)
		return nil, errEmptyTree
	}

	tr.Addf("Found %d files in branch %s", len(urls), branch)
	return urls, nil
}

// getTree performs the API call and decodes the response
func (s *Service) getTree(ctx context.Context, apiURL string) (*treeResponse, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errTransport, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errTransport, err)
	}

	var tree treeResponse
	jsonErr := json.Unmarshal(body, &tree)

	if resp.StatusCode != http.StatusOK {
		msg := tree.Message
		if jsonErr != nil || msg == "" {
			msg = string(body)
		}
		return nil, &statusError{Code: resp.StatusCode, Message: s.sanitize(msg)}
	}

	if jsonErr != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", jsonErr)
	}

	return &tree, nil
}

// sanitize strips markup from remote messages and shortens them
func (s *Service) sanitize(msg string) string {
	msg = strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(msg)))
	if len(msg) <= maxMessageLength {
		return msg
	}

	// Cut on a rune boundary
	cut := maxMessageLength
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + "..."
}

// escapePath escapes every segment of a slash separated path
func escapePath(p string) string {
	return strings.Join(lo.Map(strings.Split(p, "/"), func(seg string, _ int) string {
		return url.PathEscape(seg)
	}), "/")
}
