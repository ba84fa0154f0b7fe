package stanargs

// RunConfiguration supplies the method-independent prefix of an engine
// command line: chain/run identifiers, data and init file paths, output
// file locations. The prefix is opaque to the method-specific argument
// containers; they only append their own tokens behind it.
//
// BeginCommand must be safe for concurrent use with distinct indices, since
// commands for the runs of a multi-chain request are composed in parallel.
type RunConfiguration interface {
	BeginCommand(idx int) []string
}

// PrefixFunc adapts a plain function to the RunConfiguration interface.
type PrefixFunc func(idx int) []string

func (f PrefixFunc) BeginCommand(idx int) []string {
	return f(idx)
}
