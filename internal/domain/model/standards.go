package model

import "time"

// Classification tags a standard with a technology (e.g. "Node.js", "C#").
type Classification struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// StandardSet is a named collection of standards sourced from a repository.
type StandardSet struct {
	ID            string
	Name          string
	RepositoryURL string
	CustomPrompt  string
	CreatedAt     time.Time
}

// StandardSetInput holds the user-supplied fields for creating a standard set.
type StandardSetInput struct {
	Name          string
	RepositoryURL string
	CustomPrompt  string
}
