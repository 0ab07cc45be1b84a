// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// NavItem is one entry in the header navigation.
type NavItem struct {
	Text   string
	URL    string
	Active bool
}

// Page carries the data every layout needs.
type Page struct {
	Title      string
	Navigation []NavItem
	CSRFToken  string
}

// ErrorItem is one line of a GOV.UK error summary, linking to the field.
type ErrorItem struct {
	Text string
	Href string
}

// Timestamp is a time rendered for humans with its machine-readable form.
type Timestamp struct {
	Display string // e.g. "14 January 2024 at 2:00pm"
	ISO     string // RFC 3339, for the <time datetime> attribute
}

// StandardSetOption is a checkbox on the generate form.
type StandardSetOption struct {
	ID      string
	Name    string
	Checked bool
}

// HomePage is the "Generate Code Review" form.
type HomePage struct {
	RepositoryURL      string
	RepositoryURLError string
	StandardSets       []StandardSetOption
	Errors             []ErrorItem
}

// CodeReviewRow is one row of the code reviews table.
type CodeReviewRow struct {
	ID            string
	RepositoryURL string
	DetailURL     string
	Status        string
	Created       Timestamp
	Updated       Timestamp
}

// ComplianceReport is a compliance report rendered to sanitized HTML.
type ComplianceReport struct {
	ID   string
	HTML string
}

// StatusChange is one entry in a review's status history.
type StatusChange struct {
	Status     string
	ObservedAt Timestamp
}

// RepositorySummary is the hosting metadata panel on the detail page.
type RepositorySummary struct {
	FullName      string
	Description   string
	DefaultBranch string
	Visibility    string
	HTMLURL       string
	Stars         int
	Archived      bool
}

// CodeReviewDetailPage holds everything shown for one review.
type CodeReviewDetailPage struct {
	ID            string
	RepositoryURL string
	Status        string
	Created       Timestamp
	Updated       Timestamp
	Reports       []ComplianceReport
	History       []StatusChange
	Repository    *RepositorySummary
}

// ClassificationRow is one classification in the management list.
type ClassificationRow struct {
	ID   string
	Name string
}

// ClassificationsPage lists classifications with an inline create form.
type ClassificationsPage struct {
	Classifications []ClassificationRow
	Name            string
	NameError       string
	Errors          []ErrorItem
}

// StandardSetRow is one standard set in the management list.
type StandardSetRow struct {
	ID            string
	Name          string
	RepositoryURL string
	CustomPrompt  string
}

// StandardSetsPage lists standard sets.
type StandardSetsPage struct {
	StandardSets []StandardSetRow
}

// StandardSetForm is the create standard set form with its validation state.
type StandardSetForm struct {
	Name          string
	RepositoryURL string
	CustomPrompt  string
	FieldErrors   map[string]string // keyed by form field name
	Errors        []ErrorItem
}

// ErrorPage is a full-page error.
type ErrorPage struct {
	Heading     string
	Message     string
	MessageList []string
}
