package models

// PublishResult is produced once per successful upload
type PublishResult struct {
	DocumentText string `json:"document"`
	StorageKey   string `json:"storage_key"`
	PublicURL    string `json:"public_url"`
}

// Report holds everything a single generator run produced.
// Logs are filled in even when the run fails.
type Report struct {
	Ref    *RepoRef       `json:"repository,omitempty"`
	Result *PublishResult `json:"result,omitempty"`
	Rows   []*SitemapItem `json:"rows,omitempty"`
	Logs   []string       `json:"logs"`
}
