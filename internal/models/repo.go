package models

import "fmt"

// RepoRef points to a public GitHub repository,
// optionally pinned to a branch.
type RepoRef struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch,omitempty"` // empty when unspecified
}

// HasBranch reports whether the branch was given explicitly
func (r *RepoRef) HasBranch() bool {
	return r.Branch != ""
}

// FullName returns the owner/repo path
func (r *RepoRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

func (r *RepoRef) String() string {
	branch := r.Branch
	if branch == "" {
		branch = "default"
	}
	return fmt.Sprintf("%s (branch: %s)", r.FullName(), branch)
}
