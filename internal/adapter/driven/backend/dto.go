package backend

import (
	"encoding/json"
	"time"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

type codeReviewDTO struct {
	ID                string                `json:"_id"`
	RepositoryURL     string                `json:"repository_url"`
	Status            string                `json:"status"`
	CreatedAt         string                `json:"created_at"`
	UpdatedAt         string                `json:"updated_at"`
	ComplianceReports []complianceReportDTO `json:"compliance_reports"`
}

type complianceReportDTO struct {
	ID     string `json:"id"`
	Report string `json:"report"`
}

func (d codeReviewDTO) toModel() model.CodeReview {
	review := model.CodeReview{
		ID:            d.ID,
		RepositoryURL: d.RepositoryURL,
		Status:        d.Status,
		CreatedAt:     parseTimestamp(d.CreatedAt),
		UpdatedAt:     parseTimestamp(d.UpdatedAt),
	}
	for _, r := range d.ComplianceReports {
		review.ComplianceReports = append(review.ComplianceReports, model.ComplianceReport{
			ID:     r.ID,
			Report: r.Report,
		})
	}
	return review
}

type createCodeReviewRequest struct {
	RepositoryURL string   `json:"repository_url"`
	StandardSets  []string `json:"standard_sets"`
}

type classificationDTO struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type classificationRequest struct {
	Name string `json:"name"`
}

type standardSetDTO struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	RepositoryURL string `json:"repository_url"`
	CustomPrompt  string `json:"custom_prompt"`
	CreatedAt     string `json:"created_at"`
}

type standardSetRequest struct {
	Name          string `json:"name"`
	RepositoryURL string `json:"repository_url"`
	CustomPrompt  string `json:"custom_prompt"`
}

// errorBody is the backend's error envelope. errors is kept raw because its
// shape is only a field map for validation failures.
type errorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// parseTimestamp returns the zero time for empty or unparseable input.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
