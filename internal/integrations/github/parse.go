package github

import (
	"regexp"
	"strings"

	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/trail"
)

var (
	// Owner and repo right after the host marker, with optional .git suffix.
	// Works for https://github.com/owner/repo and git@github.com:owner/repo.git
	repoPattern = regexp.MustCompile(`github\.com[:/]([\w-]+)/([\w.-]+?)(?:\.git)?(?:[/?#]|$)`)

	// Branch names may contain slashes, stop at the query or fragment
	branchPattern = regexp.MustCompile(`/tree/([^?#]+)`)
)

// ParseRepoURL extracts owner, repository name and branch from a GitHub URL.
// The branch is left empty when the URL does not name one.
func ParseRepoURL(rawURL string, tr *trail.Trail) (*models.RepoRef, error) {

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, models.NewError(
			models.InvalidRepositoryURL, nil,
			"Please enter a GitHub repository URL",
		)
	}

	loc := repoPattern.FindStringSubmatchIndex(rawURL)
	if loc == nil {
		return nil, models.NewError(
			models.InvalidRepositoryURL, nil,
			"Invalid GitHub repository URL provided.",
		)
	}

	ref := &models.RepoRef{
		Owner: rawURL[loc[2]:loc[3]],
		Repo:  rawURL[loc[4]:loc[5]],
	}

	// Look for the branch only after the repo name,
	// so an owner or repo called "tree" is not mistaken for a branch.
	if m := branchPattern.FindStringSubmatch(rawURL[loc[5]:]); m != nil {
		ref.Branch = strings.TrimSuffix(m[1], "/")
	}

	branch := ref.Branch
	if branch == "" {
		branch = "default"
	}

	tr.Addf(
		"Extracted repository details - Owner: %s, Repo: %s, Branch: %s",
		ref.Owner, ref.Repo, branch,
	)

	return ref, nil
}
