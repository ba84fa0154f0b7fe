package stanargs

// Rule identifies which legality rule a configuration value violated.
// Carried in the error's structured fields so callers can branch on the
// rule instead of parsing message text.
type Rule int

const (
	RuleUnknownAlgorithm Rule = iota
	RuleForbiddenForAlgorithm
	RuleWrongType
	RuleOutOfDomain
)

func (r Rule) String() string {
	switch r {
	case RuleUnknownAlgorithm:
		return "unknown_algorithm"
	case RuleForbiddenForAlgorithm:
		return "forbidden_for_algorithm"
	case RuleWrongType:
		return "wrong_type"
	case RuleOutOfDomain:
		return "out_of_domain"
	default:
		return "unknown"
	}
}
