package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Embeddings are stored as little-endian float64 BLOBs, 8 bytes per
// component. The dimension is implied by the blob length.

// serializeEmbedding converts a float64 slice to its binary representation.
func serializeEmbedding(embedding []float64) []byte {
	if len(embedding) == 0 {
		return nil
	}
	buf := make([]byte, len(embedding)*8)
	for i, v := range embedding {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// deserializeEmbedding converts a binary representation back to a float64
// slice.
func deserializeEmbedding(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 8", len(buf))
	}
	embedding := make([]float64, len(buf)/8)
	for i := range embedding {
		bits := binary.LittleEndian.Uint64(buf[i*8:])
		embedding[i] = math.Float64frombits(bits)
	}
	return embedding, nil
}
