package postgres

import (
	"context"

	"github.com/google/uuid"

	"inkference/internal/domain"
	"inkference/internal/port"
)

// unconfiguredRepo stands in when the database is unreachable at
// startup. Every call fails with domain.ErrBackendUnconfigured; the
// orchestrator treats that as a soft persistence failure, so
// extraction keeps serving.
type unconfiguredRepo struct{}

// NewUnconfiguredRepo returns a SubmissionRepository whose every call
// fails with domain.ErrBackendUnconfigured.
func NewUnconfiguredRepo() port.SubmissionRepository {
	return unconfiguredRepo{}
}

func (unconfiguredRepo) Create(ctx context.Context, sub *domain.Submission) error {
	return domain.ErrBackendUnconfigured
}

func (unconfiguredRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return nil, domain.ErrBackendUnconfigured
}

func (unconfiguredRepo) List(ctx context.Context, offset, limit int) ([]domain.Submission, int, error) {
	return nil, 0, domain.ErrBackendUnconfigured
}
