package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkference/internal/domain"
	"inkference/internal/port"
)

type submissionRepo struct {
	db *sqlx.DB
}

// NewSubmissionRepo creates a new PostgreSQL-backed SubmissionRepository.
func NewSubmissionRepo(db *sqlx.DB) port.SubmissionRepository {
	return &submissionRepo{db: db}
}

// submissionRow is the flat DB shape; the parsed form travels as jsonb.
type submissionRow struct {
	ID        uuid.UUID `db:"id"`
	Parsed    []byte    `db:"parsed"`
	RawText   string    `db:"raw_text"`
	PDFKey    *string   `db:"pdf_key"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *submissionRow) toDomain() (*domain.Submission, error) {
	sub := &domain.Submission{
		ID:        r.ID,
		RawText:   r.RawText,
		PDFKey:    r.PDFKey,
		CreatedAt: r.CreatedAt,
	}
	if err := json.Unmarshal(r.Parsed, &sub.Parsed); err != nil {
		return nil, fmt.Errorf("decoding parsed form: %w", err)
	}
	return sub, nil
}

func (r *submissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	sub.CreatedAt = time.Now().UTC()

	parsed, err := json.Marshal(sub.Parsed)
	if err != nil {
		return fmt.Errorf("submissionRepo.Create encode: %w", err)
	}

	query := `INSERT INTO submissions (id, parsed, raw_text, pdf_key, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.ExecContext(ctx, query,
		sub.ID, parsed, sub.RawText, sub.PDFKey, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("submissionRepo.Create: %w", err)
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	var row submissionRow
	err := r.db.GetContext(ctx, &row,
		"SELECT id, parsed, raw_text, pdf_key, created_at FROM submissions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("submissionRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *submissionRepo) List(ctx context.Context, offset, limit int) ([]domain.Submission, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM submissions")
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.List count: %w", err)
	}

	var rows []submissionRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT id, parsed, raw_text, pdf_key, created_at FROM submissions
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.List: %w", err)
	}

	subs := make([]domain.Submission, 0, len(rows))
	for i := range rows {
		sub, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("submissionRepo.List: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, total, nil
}
