package model

// RepositoryInfo is hosting metadata for a reviewed repository.
type RepositoryInfo struct {
	FullName      string
	Description   string
	DefaultBranch string
	Visibility    string
	HTMLURL       string
	Stars         int
	Archived      bool
}
