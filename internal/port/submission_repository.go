package port

import (
	"context"

	"github.com/google/uuid"

	"inkference/internal/domain"
)

// SubmissionRepository abstracts the row store for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, offset, limit int) ([]domain.Submission, int, error)
}
