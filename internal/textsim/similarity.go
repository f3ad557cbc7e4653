package textsim

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// CosineSimilarity computes the cosine similarity between two term vectors:
// the dot product over shared terms divided by the product of both norms.
// Returns 0 if either vector is nil or has zero norm. The result lies in [0, 1].
func CosineSimilarity(a, b *TermVector) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}

	small, large := a, b
	if len(small.weights) > len(large.weights) {
		small, large = large, small
	}

	products := make([]float64, 0, len(small.weights))
	for term, w := range small.weights {
		if other, ok := large.weights[term]; ok {
			products = append(products, w*other)
		}
	}
	if len(products) == 0 {
		return 0
	}
	// Summing in sorted order keeps the score independent of map iteration
	// order, so score(a, b) == score(b, a) exactly.
	sort.Float64s(products)
	dot := floats.Sum(products)

	score := dot / (a.norm * b.norm)
	if score > 1 {
		return 1
	}
	return score
}
