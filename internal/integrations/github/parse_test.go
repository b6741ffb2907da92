package github

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/trail"
)

func TestParseRepoURL(t *testing.T) {

	tests := []struct {
		name     string
		input    string
		expected *models.RepoRef
		wantErr  bool
	}{
		{"plain https", "https://github.com/adorosario/github-raw-urls", &models.RepoRef{Owner: "adorosario", Repo: "github-raw-urls"}, false},
		{"trailing slash", "https://github.com/foo/bar/", &models.RepoRef{Owner: "foo", Repo: "bar"}, false},
		{"git suffix", "https://github.com/foo/bar.git", &models.RepoRef{Owner: "foo", Repo: "bar"}, false},
		{"git suffix and slash", "https://github.com/foo/bar.git/", &models.RepoRef{Owner: "foo", Repo: "bar"}, false},
		{"ssh", "git@github.com:foo/bar.git", &models.RepoRef{Owner: "foo", Repo: "bar"}, false},
		{"surrounding whitespace", "  https://github.com/foo/bar \n", &models.RepoRef{Owner: "foo", Repo: "bar"}, false},
		{"dots in repo", "https://github.com/foo/foo.github.io", &models.RepoRef{Owner: "foo", Repo: "foo.github.io"}, false},
		{"no scheme", "github.com/foo_1/bar-2", &models.RepoRef{Owner: "foo_1", Repo: "bar-2"}, false},
		{"query string", "https://github.com/foo/bar?tab=readme", &models.RepoRef{Owner: "foo", Repo: "bar"}, false},
		{"branch", "https://github.com/foo/bar/tree/dev", &models.RepoRef{Owner: "foo", Repo: "bar", Branch: "dev"}, false},
		{"branch with slash", "https://github.com/foo/bar/tree/feature/sub-branch", &models.RepoRef{Owner: "foo", Repo: "bar", Branch: "feature/sub-branch"}, false},
		{"branch with trailing slash", "https://github.com/foo/bar/tree/feature/x/", &models.RepoRef{Owner: "foo", Repo: "bar", Branch: "feature/x"}, false},
		{"branch with query", "https://github.com/foo/bar/tree/release/1.0?x=1#top", &models.RepoRef{Owner: "foo", Repo: "bar", Branch: "release/1.0"}, false},
		{"owner named tree", "https://github.com/tree/bar", &models.RepoRef{Owner: "tree", Repo: "bar"}, false},
		{"blob path is not a branch", "https://github.com/foo/bar/blob/main/README.md", &models.RepoRef{Owner: "foo", Repo: "bar"}, false},
		{"empty", "", nil, true},
		{"blank", "   ", nil, true},
		{"other host", "https://gitlab.com/foo/bar", nil, true},
		{"owner only", "https://github.com/foo", nil, true},
		{"not a url", "hello world", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepoURL(tt.input, nil)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("got error = %v, want error = %t", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, models.ErrInvalidRepositoryURL) {
				t.Errorf("got error %v, want invalid repository URL", err)
			}

			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ref mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRepoURLTrail(t *testing.T) {
	tr := trail.New(nil)
	if _, err := ParseRepoURL("https://github.com/foo/bar", tr); err != nil {
		t.Fatalf("got error = %v, want no error", err)
	}

	want := []string{"Extracted repository details - Owner: foo, Repo: bar, Branch: default"}
	if diff := cmp.Diff(want, tr.Lines()); diff != "" {
		t.Errorf("trail mismatch (-want +got):\n%s", diff)
	}
}
