package config

import (
	"github.com/statforge/gostan/pkg/errors"
	"github.com/statforge/gostan/pkg/stanargs"
)

// optimizeFields lists the recognized keys of the optimize section in the
// order they are type-checked, so the first offending key is deterministic.
var optimizeFields = []string{
	"algorithm",
	"init_alpha",
	"iter",
	"save_iterations",
	"tol_obj",
	"tol_rel_obj",
	"tol_grad",
	"tol_rel_grad",
	"tol_param",
	"history_size",
}

var optimizeFieldSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(optimizeFields))
	for _, f := range optimizeFields {
		set[f] = struct{}{}
	}
	return set
}()

// optimizeOptions type-checks the raw section values and converts them into
// stanargs options. Only the declared kind of each key is enforced here;
// domain and algorithm-pairing rules belong to stanargs.NewOptimizeConfig.
func optimizeOptions(raw map[string]interface{}) ([]stanargs.OptimizeOption, error) {
	var opts []stanargs.OptimizeOption

	for _, key := range optimizeFields {
		value, ok := raw[key]
		if !ok {
			continue
		}

		switch key {
		case "algorithm":
			s, ok := value.(string)
			if !ok {
				return nil, wrongType(key, value, "string")
			}
			opts = append(opts, stanargs.WithAlgorithm(s))

		case "iter", "history_size":
			n, ok := asInt(value)
			if !ok {
				return nil, wrongType(key, value, "int")
			}
			if key == "iter" {
				opts = append(opts, stanargs.WithIterations(n))
			} else {
				opts = append(opts, stanargs.WithHistorySize(n))
			}

		case "save_iterations":
			b, ok := value.(bool)
			if !ok {
				return nil, wrongType(key, value, "bool")
			}
			opts = append(opts, stanargs.WithSaveIterations(b))

		default:
			// The remaining keys are the line-search step size and the five
			// convergence tolerances, all declared float. An integer literal
			// is rejected as a wrong type, matching the engine wrapper.
			f, ok := value.(float64)
			if !ok {
				return nil, wrongType(key, value, "float")
			}
			opts = append(opts, floatOption(key, f))
		}
	}

	for key := range raw {
		if _, ok := optimizeFieldSet[key]; !ok {
			return nil, errors.WithFields(
				errors.New(errors.InvalidConfiguration, "unknown optimizer setting "+key),
				errors.Fields{"field": key},
			)
		}
	}

	return opts, nil
}

func floatOption(key string, v float64) stanargs.OptimizeOption {
	switch key {
	case "init_alpha":
		return stanargs.WithInitAlpha(v)
	case "tol_obj":
		return stanargs.WithTolObj(v)
	case "tol_rel_obj":
		return stanargs.WithTolRelObj(v)
	case "tol_grad":
		return stanargs.WithTolGrad(v)
	case "tol_rel_grad":
		return stanargs.WithTolRelGrad(v)
	default:
		return stanargs.WithTolParam(v)
	}
}

// asInt accepts the integer kinds the YAML decoder produces. Floats are not
// coerced: iter 2.5 is a type error, not a truncation.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

func wrongType(field string, value interface{}, want string) error {
	return errors.WithFields(
		errors.New(errors.InvalidConfiguration, field+" must be type of "+want),
		errors.Fields{
			"field": field,
			"rule":  stanargs.RuleWrongType.String(),
			"value": value,
		},
	)
}
