package face

import "time"

// EmbeddingDim is the descriptor length produced by the capture client.
const EmbeddingDim = 128

type FaceTemplate struct {
	EmployeeID string
	Embedding  []float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
