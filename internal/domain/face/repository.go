package face

import "context"

type FaceTemplateRepository interface {
	Upsert(ctx context.Context, tpl FaceTemplate) error
	GetByEmployee(ctx context.Context, employeeID string) (*FaceTemplate, error)
	Exists(ctx context.Context, employeeID string) (bool, error)
}
