package face

import "math"

// Distance is the Euclidean distance between two embeddings. Both slices
// must have the same length.
func Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
