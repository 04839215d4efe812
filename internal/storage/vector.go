package storage

import "math"

// CosineSimilarity computes the normalized dot product between two vectors.
// Vectors of different lengths are compared over their shared-length prefix.
// Returns 0 when either vector has zero magnitude, so records with missing
// or degenerate embeddings never outrank real matches.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
