package face

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haergo/workforce-backend-go/internal/domain/face"
)

type Service struct {
	faceTemplateRepository face.FaceTemplateRepository
	matchThreshold         float64
	logger                 *slog.Logger
}

func NewService(
	faceTemplateRepository face.FaceTemplateRepository,
	matchThreshold float64,
	logger *slog.Logger,
) *Service {
	return &Service{
		faceTemplateRepository: faceTemplateRepository,
		matchThreshold:         matchThreshold,
		logger:                 logger,
	}
}

// Register stores or replaces the employee's face template. Re-registering
// overwrites the previous embedding.
func (s *Service) Register(ctx context.Context, employeeID string, req face.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	now := time.Now()
	tpl := face.FaceTemplate{
		EmployeeID: employeeID,
		Embedding:  req.Embedding,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.faceTemplateRepository.Upsert(ctx, tpl); err != nil {
		return fmt.Errorf("upsert face template: %w", err)
	}

	s.logger.InfoContext(ctx, "face template registered", "employee_id", employeeID)
	return nil
}

// Verify compares the probe embedding against the registered template.
func (s *Service) Verify(ctx context.Context, employeeID string, req face.VerifyRequest) (face.VerifyResponse, error) {
	if err := req.Validate(); err != nil {
		return face.VerifyResponse{}, err
	}

	tpl, err := s.faceTemplateRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return face.VerifyResponse{}, fmt.Errorf("get face template: %w", err)
	}
	if tpl == nil {
		return face.VerifyResponse{}, face.ErrNoTemplateRegistered
	}

	distance := face.Distance(tpl.Embedding, req.Embedding)
	return face.VerifyResponse{
		Match:    distance <= s.matchThreshold,
		Distance: distance,
	}, nil
}

func (s *Service) Status(ctx context.Context, employeeID string) (face.StatusResponse, error) {
	registered, err := s.faceTemplateRepository.Exists(ctx, employeeID)
	if err != nil {
		return face.StatusResponse{}, fmt.Errorf("check face template: %w", err)
	}
	return face.StatusResponse{Registered: registered}, nil
}
