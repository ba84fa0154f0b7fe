package stanargs

import (
	"math"
	"strconv"

	"github.com/statforge/gostan/pkg/errors"
)

// OptimizeConfig holds the method-specific arguments of an optimizer run.
// It is immutable: NewOptimizeConfig validates eagerly and either returns a
// fully checked value or an InvalidConfiguration error, never a partially
// valid object. Compose reads frozen state only, so a single config may be
// serialized concurrently for any number of run indices.
type OptimizeConfig struct {
	algorithm      Algorithm
	initAlpha      *float64
	iter           *int
	saveIterations bool
	tolObj         *float64
	tolRelObj      *float64
	tolGrad        *float64
	tolRelGrad     *float64
	tolParam       *float64
	historySize    *int

	// thin is a sample-method control; the optimizer never populates it.
	thin *int
}

// optimizeParams collects raw option values before validation. The algorithm
// stays a string here so normalization and the membership check run in
// construction order, mirroring the engine wrapper being replaced.
type optimizeParams struct {
	algorithm      *string
	initAlpha      *float64
	iter           *int
	saveIterations bool
	tolObj         *float64
	tolRelObj      *float64
	tolGrad        *float64
	tolRelGrad     *float64
	tolParam       *float64
	historySize    *int
}

// OptimizeOption configures a single optimizer argument.
type OptimizeOption func(*optimizeParams)

// WithAlgorithm selects the optimization algorithm by name, case-insensitive
// over bfgs, lbfgs and newton. Leaving it unset defers to the engine default.
func WithAlgorithm(name string) OptimizeOption {
	return func(p *optimizeParams) {
		p.algorithm = &name
	}
}

// WithInitAlpha sets the initial step size of the line search. Line-search
// algorithms only; illegal with newton.
func WithInitAlpha(alpha float64) OptimizeOption {
	return func(p *optimizeParams) {
		p.initAlpha = &alpha
	}
}

// WithIterations caps the number of optimizer iterations.
func WithIterations(n int) OptimizeOption {
	return func(p *optimizeParams) {
		p.iter = &n
	}
}

// WithSaveIterations requests per-iteration output from the engine.
func WithSaveIterations(save bool) OptimizeOption {
	return func(p *optimizeParams) {
		p.saveIterations = save
	}
}

// WithTolObj sets the convergence tolerance on the objective value.
func WithTolObj(tol float64) OptimizeOption {
	return func(p *optimizeParams) {
		p.tolObj = &tol
	}
}

// WithTolRelObj sets the convergence tolerance on the relative change of the
// objective value.
func WithTolRelObj(tol float64) OptimizeOption {
	return func(p *optimizeParams) {
		p.tolRelObj = &tol
	}
}

// WithTolGrad sets the convergence tolerance on the gradient norm.
func WithTolGrad(tol float64) OptimizeOption {
	return func(p *optimizeParams) {
		p.tolGrad = &tol
	}
}

// WithTolRelGrad sets the convergence tolerance on the relative gradient norm.
func WithTolRelGrad(tol float64) OptimizeOption {
	return func(p *optimizeParams) {
		p.tolRelGrad = &tol
	}
}

// WithTolParam sets the convergence tolerance on the parameter-space step.
func WithTolParam(tol float64) OptimizeOption {
	return func(p *optimizeParams) {
		p.tolParam = &tol
	}
}

// WithHistorySize sets the curvature-memory size. L-BFGS only.
func WithHistorySize(n int) OptimizeOption {
	return func(p *optimizeParams) {
		p.historySize = &n
	}
}

// NewOptimizeConfig validates the given options and returns an immutable
// configuration. Validation is field-by-field and fail-fast: the first
// violated rule is reported and no object is produced.
func NewOptimizeConfig(opts ...OptimizeOption) (*OptimizeConfig, error) {
	p := &optimizeParams{}
	for _, opt := range opts {
		opt(p)
	}

	alg := AlgorithmDefault
	if p.algorithm != nil {
		var ok bool
		alg, ok = parseAlgorithm(*p.algorithm)
		if !ok {
			return nil, violation(RuleUnknownAlgorithm, "algorithm", *p.algorithm,
				"please specify optimizer algorithm as one of [bfgs, lbfgs, newton]")
		}
	}

	if p.initAlpha != nil {
		if alg == AlgorithmNewton {
			return nil, violation(RuleForbiddenForAlgorithm, "init_alpha", *p.initAlpha,
				"init_alpha must not be set when algorithm is newton")
		}
		if err := requirePositive("init_alpha", *p.initAlpha); err != nil {
			return nil, err
		}
	}

	if p.iter != nil && *p.iter < 0 {
		// Zero is accepted; the message wording matches the reference wrapper.
		return nil, violation(RuleOutOfDomain, "iter", *p.iter,
			"iter must be greater than 0")
	}

	tolerances := []struct {
		name  string
		value *float64
	}{
		{"tol_obj", p.tolObj},
		{"tol_rel_obj", p.tolRelObj},
		{"tol_grad", p.tolGrad},
		{"tol_rel_grad", p.tolRelGrad},
		{"tol_param", p.tolParam},
	}
	for _, tol := range tolerances {
		if tol.value == nil {
			continue
		}
		if alg == AlgorithmNewton {
			return nil, violation(RuleForbiddenForAlgorithm, tol.name, *tol.value,
				tol.name+" must not be set when algorithm is newton")
		}
		if err := requirePositive(tol.name, *tol.value); err != nil {
			return nil, err
		}
	}

	if p.historySize != nil {
		// The wrapper this replaces compares the already-lowercased algorithm
		// name against the literal "BFGS" here, so its BFGS exclusion never
		// fires and bfgs + history_size passes. Kept for drop-in
		// compatibility; pinned by TestHistorySizeBFGSQuirk.
		if alg == AlgorithmNewton || alg.String() == "BFGS" {
			return nil, violation(RuleForbiddenForAlgorithm, "history_size", *p.historySize,
				"history_size must not be set when algorithm is newton or BFGS")
		}
		if *p.historySize < 0 {
			return nil, violation(RuleOutOfDomain, "history_size", *p.historySize,
				"history_size must be greater than 0")
		}
	}

	return &OptimizeConfig{
		algorithm:      alg,
		initAlpha:      p.initAlpha,
		iter:           p.iter,
		saveIterations: p.saveIterations,
		tolObj:         p.tolObj,
		tolRelObj:      p.tolRelObj,
		tolGrad:        p.tolGrad,
		tolRelGrad:     p.tolRelGrad,
		tolParam:       p.tolParam,
		historySize:    p.historySize,
		thin:           nil,
	}, nil
}

// Method reports the estimation method this configuration serializes for.
func (c *OptimizeConfig) Method() Method {
	return MethodOptimize
}

// Algorithm returns the selected algorithm, AlgorithmDefault if unset.
func (c *OptimizeConfig) Algorithm() Algorithm {
	return c.algorithm
}

// InitAlpha returns the initial step size and whether it was set.
func (c *OptimizeConfig) InitAlpha() (float64, bool) {
	return deref(c.initAlpha)
}

// Iterations returns the iteration cap and whether it was set.
func (c *OptimizeConfig) Iterations() (int, bool) {
	if c.iter == nil {
		return 0, false
	}
	return *c.iter, true
}

// SaveIterations reports whether per-iteration output was requested.
func (c *OptimizeConfig) SaveIterations() bool {
	return c.saveIterations
}

// HistorySize returns the curvature-memory size and whether it was set.
func (c *OptimizeConfig) HistorySize() (int, bool) {
	if c.historySize == nil {
		return 0, false
	}
	return *c.historySize, true
}

// Thin is always unset for the optimizer; it exists so callers treating all
// method configs uniformly see the same shape as the sample method.
func (c *OptimizeConfig) Thin() (int, bool) {
	if c.thin == nil {
		return 0, false
	}
	return *c.thin, true
}

// Compose serializes the configuration into command tokens for the given run
// index: the collaborator's prefix, the method token, then every set argument
// in fixed order. Tokens are bare key=value units ready for an argv slice; no
// shell quoting is applied.
func (c *OptimizeConfig) Compose(rs RunConfiguration, idx int) []string {
	cmd := rs.BeginCommand(idx)

	cmd = append(cmd, "method="+MethodOptimize.String())
	if c.algorithm != AlgorithmDefault {
		cmd = append(cmd, "algorithm="+c.algorithm.String())
	}
	if c.initAlpha != nil {
		cmd = append(cmd, "init_alpha="+formatFloat(*c.initAlpha))
	}
	if c.tolObj != nil {
		cmd = append(cmd, "tol_obj="+formatFloat(*c.tolObj))
	}
	if c.tolRelObj != nil {
		cmd = append(cmd, "tol_rel_obj="+formatFloat(*c.tolRelObj))
	}
	if c.tolGrad != nil {
		cmd = append(cmd, "tol_grad="+formatFloat(*c.tolGrad))
	}
	if c.tolRelGrad != nil {
		cmd = append(cmd, "tol_rel_grad="+formatFloat(*c.tolRelGrad))
	}
	if c.tolParam != nil {
		cmd = append(cmd, "tol_param="+formatFloat(*c.tolParam))
	}
	if c.historySize != nil {
		cmd = append(cmd, "history_size="+strconv.Itoa(*c.historySize))
	}
	if c.iter != nil {
		cmd = append(cmd, "iter="+strconv.Itoa(*c.iter))
	}
	if c.saveIterations {
		cmd = append(cmd, "save_iterations=1")
	}

	return cmd
}

func requirePositive(field string, v float64) error {
	if v <= 0 || math.IsNaN(v) {
		return violation(RuleOutOfDomain, field, v, field+" must be greater than 0")
	}
	return nil
}

func violation(rule Rule, field string, value interface{}, message string) error {
	return errors.WithFields(
		errors.New(errors.InvalidConfiguration, message),
		errors.Fields{"field": field, "rule": rule.String(), "value": value},
	)
}

// formatFloat uses the shortest decimal representation that round-trips,
// e.g. 1e-08 and 0.5. Matches the stringification the engine's reference
// wrapper relies on for the values it pins in tests.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
