package stanargs

import "strings"

// Algorithm is the closed set of optimization algorithms the engine accepts.
// The zero value means "let the engine pick its default" and emits no
// algorithm token at all.
type Algorithm int

const (
	AlgorithmDefault Algorithm = iota
	AlgorithmBFGS
	AlgorithmLBFGS
	AlgorithmNewton
)

var algorithmNames = map[Algorithm]string{
	AlgorithmBFGS:   "bfgs",
	AlgorithmLBFGS:  "lbfgs",
	AlgorithmNewton: "newton",
}

// String returns the lowercase canonical name, or "" for AlgorithmDefault.
func (a Algorithm) String() string {
	return algorithmNames[a]
}

// parseAlgorithm normalizes the name to lowercase before matching, so any
// casing of bfgs/lbfgs/newton is accepted. Returns false for anything else.
func parseAlgorithm(name string) (Algorithm, bool) {
	switch strings.ToLower(name) {
	case "bfgs":
		return AlgorithmBFGS, true
	case "lbfgs":
		return AlgorithmLBFGS, true
	case "newton":
		return AlgorithmNewton, true
	default:
		return AlgorithmDefault, false
	}
}
