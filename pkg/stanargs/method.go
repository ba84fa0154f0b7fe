package stanargs

import (
	"strings"

	"github.com/statforge/gostan/pkg/errors"
)

// Method identifies an estimation method of the engine. Each method owns a
// `method=<name>` token on the command line and a method-specific argument
// block behind it.
type Method int

const (
	MethodOptimize Method = iota
	MethodSample
	MethodVariational
	MethodGenerateQuantities
	MethodLaplace
	MethodPathfinder
)

var methodNames = [...]string{
	"optimize",
	"sample",
	"variational",
	"generate_quantities",
	"laplace",
	"pathfinder",
}

// String returns the token used on the engine command line.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "unknown"
	}
	return methodNames[m]
}

// ParseMethod converts a case-insensitive method name to a Method.
func ParseMethod(name string) (Method, error) {
	lowered := strings.ToLower(name)
	for i, n := range methodNames {
		if n == lowered {
			return Method(i), nil
		}
	}
	return 0, errors.WithFields(
		errors.New(errors.InvalidInput, "unknown estimation method "+name),
		errors.Fields{"method": name},
	)
}
