package driven

import (
	"context"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

// RepositoryInspector looks up hosting metadata for a repository URL.
// It returns (nil, nil) for URLs on hosts it does not understand.
type RepositoryInspector interface {
	InspectRepository(ctx context.Context, repositoryURL string) (*model.RepositoryInfo, error)
}
