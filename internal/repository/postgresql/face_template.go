package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/face"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

type faceTemplateRepository struct {
	db *database.DB
}

func NewFaceTemplateRepository(db *database.DB) face.FaceTemplateRepository {
	return &faceTemplateRepository{db: db}
}

func (r *faceTemplateRepository) Upsert(ctx context.Context, tpl face.FaceTemplate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO face_templates (employee_id, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			updated_at = EXCLUDED.updated_at
	`

	_, err := q.Exec(ctx, query, tpl.EmployeeID, tpl.Embedding, tpl.CreatedAt, tpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert face template: %w", err)
	}

	return nil
}

func (r *faceTemplateRepository) GetByEmployee(ctx context.Context, employeeID string) (*face.FaceTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, embedding, created_at, updated_at
		FROM face_templates
		WHERE employee_id = $1
	`

	var tpl face.FaceTemplate
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&tpl.EmployeeID, &tpl.Embedding, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get face template: %w", err)
	}

	return &tpl, nil
}

func (r *faceTemplateRepository) Exists(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM face_templates WHERE employee_id = $1)`,
		employeeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check face template: %w", err)
	}

	return exists, nil
}
