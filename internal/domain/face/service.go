package face

import "context"

type FaceService interface {
	Register(ctx context.Context, employeeID string, req RegisterRequest) error
	Verify(ctx context.Context, employeeID string, req VerifyRequest) (VerifyResponse, error)
	Status(ctx context.Context, employeeID string) (StatusResponse, error)
}
