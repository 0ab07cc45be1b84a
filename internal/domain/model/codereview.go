package model

import "time"

// CodeReview is a review of one repository, owned by the backend API.
type CodeReview struct {
	ID                string
	RepositoryURL     string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ComplianceReports []ComplianceReport
}

// ComplianceReport is one markdown report produced for a standard set.
type ComplianceReport struct {
	ID     string
	Report string
}
