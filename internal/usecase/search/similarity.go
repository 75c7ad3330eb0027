package search

import "math"

// Cosine returns the cosine similarity of two vectors in [-1, 1]: the dot
// product divided by the product of the Euclidean norms.
//
// Mismatched lengths score 0 — a length difference means model-version skew
// between the stored and query vectors, which must degrade that one candidate
// rather than fail the request. Zero-norm input also scores 0, never NaN.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
