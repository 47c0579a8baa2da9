package overtime

import (
	"context"

	"github.com/haergo/workforce-backend-go/internal/domain/user"
)

type OvertimeService interface {
	Submit(ctx context.Context, actor user.Actor, req SubmitRequest) (RequestResponse, error)
	Decide(ctx context.Context, actor user.Actor, requestID string, req DecideRequest) (RequestResponse, error)
	Cancel(ctx context.Context, actor user.Actor, requestID string) (RequestResponse, error)
	GetByID(ctx context.Context, actor user.Actor, requestID string) (RequestResponse, error)
	List(ctx context.Context, actor user.Actor, filter ListFilter) ([]RequestResponse, error)
	ListPendingForApprover(ctx context.Context, actor user.Actor) ([]RequestResponse, error)
}
