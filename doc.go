// Package gostan validates and serializes configuration for the estimation
// methods of a CmdStan-style statistical-modeling engine that is invoked as
// a subprocess.
//
// The engine's command-line grammar is a flat sequence of key=value tokens:
//
//	<executable> <method-prefix-tokens> method=optimize <optimizer-tokens>
//
// gostan owns the middle of that pipeline: it takes user-chosen method
// parameters, enforces the per-algorithm legality rules, and renders the
// method-specific token block in a fixed, reproducible order. Process
// invocation, output parsing and model compilation are deliberately left to
// the caller.
//
// Key packages:
//
//   - stanargs: the validated, immutable method argument containers and
//     their command serialization. Construction is fail-fast: an invalid
//     combination of parameters never becomes a live object.
//
//   - config: YAML settings files for a run, validated with struct tags for
//     the static sections and per-field type checks for the optimizer block.
//
//   - runlog: an append-only SQLite record of composed command lines for
//     reproducing past runs.
//
//   - errors, logging: structured errors with a closed code set, and
//     leveled logging with run/method context.
//
// Composing a command:
//
//	cfg, err := stanargs.NewOptimizeConfig(
//	    stanargs.WithAlgorithm("lbfgs"),
//	    stanargs.WithIterations(2000),
//	    stanargs.WithTolObj(1e-8),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	argv := cfg.Compose(runConfig, 0)
package gostan
