package textsim

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// TermVector is a sparse term-frequency vector. Absent terms have weight 0.
// A TermVector is never modified after Vectorize returns it.
type TermVector struct {
	weights map[string]float64
	norm    float64
}

// Vectorize builds a term-frequency vector from a token sequence: each distinct
// term maps to its occurrence count divided by the total token count.
// Weights are not scaled by inverse document frequency.
// An empty token sequence yields an empty vector with zero norm.
func Vectorize(tokens []string) *TermVector {
	if len(tokens) == 0 {
		return &TermVector{weights: map[string]float64{}}
	}

	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}

	total := float64(len(tokens))
	values := make([]float64, 0, len(counts))
	for term, count := range counts {
		w := count / total
		counts[term] = w
		values = append(values, w)
	}
	sort.Float64s(values)

	return &TermVector{
		weights: counts,
		norm:    floats.Norm(values, 2),
	}
}

// VectorizeText tokenizes text and builds its term-frequency vector.
func VectorizeText(text string) *TermVector {
	return Vectorize(Tokenize(text))
}

// Weight returns the weight of term, or 0 when the term is absent.
func (v *TermVector) Weight(term string) float64 {
	if v == nil {
		return 0
	}
	return v.weights[term]
}

// Len returns the number of distinct terms.
func (v *TermVector) Len() int {
	if v == nil {
		return 0
	}
	return len(v.weights)
}

// Norm returns the Euclidean norm of the vector.
func (v *TermVector) Norm() float64 {
	if v == nil {
		return 0
	}
	return v.norm
}

// Sum returns the total of all weights: 1 for any non-empty vector, 0 otherwise.
func (v *TermVector) Sum() float64 {
	if v == nil || len(v.weights) == 0 {
		return 0
	}
	values := make([]float64, 0, len(v.weights))
	for _, w := range v.weights {
		values = append(values, w)
	}
	sort.Float64s(values)
	return floats.Sum(values)
}

// Terms returns the distinct terms in lexical order.
func (v *TermVector) Terms() []string {
	if v == nil {
		return nil
	}
	terms := make([]string, 0, len(v.weights))
	for term := range v.weights {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
