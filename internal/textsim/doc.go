// Package textsim provides the text similarity primitives used for plagiarism scoring.
//
// The pieces are:
//   - Segment/Tokenize: Unicode word segmentation (UAX #29) with lower-case folding
//   - Vectorize: term-frequency vectors (count / total tokens, no IDF weighting)
//   - CosineSimilarity: angular closeness of two term vectors in [0, 1]
//   - PhraseMatcher: verbatim word n-gram overlap between two texts
//
// Nothing in this package returns an error. Empty or wordless input yields empty
// token slices, empty vectors and a similarity of 0.
package textsim
