package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
