package face

import "github.com/haergo/workforce-backend-go/internal/pkg/validator"

type RegisterRequest struct {
	Embedding []float64 `json:"embedding"`
}

func (r *RegisterRequest) Validate() error {
	if len(r.Embedding) != EmbeddingDim {
		return validator.ValidationErrors{{
			Field:   "embedding",
			Message: "embedding must contain exactly 128 values",
		}}
	}
	return nil
}

type VerifyRequest struct {
	Embedding []float64 `json:"embedding"`
}

func (r *VerifyRequest) Validate() error {
	if len(r.Embedding) != EmbeddingDim {
		return validator.ValidationErrors{{
			Field:   "embedding",
			Message: "embedding must contain exactly 128 values",
		}}
	}
	return nil
}

type VerifyResponse struct {
	Match    bool    `json:"match"`
	Distance float64 `json:"distance"`
}

type StatusResponse struct {
	Registered bool `json:"registered"`
}
