// gostan composes and validates engine command lines from a settings file
// without launching anything: a dry-run front end for inspecting exactly
// what a run would execute.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/statforge/gostan/pkg/config"
	"github.com/statforge/gostan/pkg/errors"
	"github.com/statforge/gostan/pkg/logging"
	"github.com/statforge/gostan/pkg/runlog"
	"github.com/statforge/gostan/pkg/stanargs"
)

// runPrefix supplies the method-independent command prefix for each run
// index from the settings file's run section.
type runPrefix struct {
	run   config.RunSettings
	runID string
}

func (p runPrefix) BeginCommand(idx int) []string {
	cmd := []string{fmt.Sprintf("id=%d", idx+1)}
	if p.run.Seed != nil {
		cmd = append(cmd, "random", fmt.Sprintf("seed=%d", *p.run.Seed))
	}
	if p.run.DataFile != "" {
		cmd = append(cmd, "data", "file="+p.run.DataFile)
	}
	if p.run.InitFile != "" {
		cmd = append(cmd, "init="+p.run.InitFile)
	}
	output := filepath.Join(p.run.OutputDir, fmt.Sprintf("%s_%d.csv", p.runID, idx+1))
	return append(cmd, "output", "file="+output)
}

func main() {
	settingsPath := flag.String("config", "gostan.yaml", "path to the run settings file")
	runs := flag.Int("runs", 0, "override the number of runs from the settings file")
	recordPath := flag.String("record", "", "record composed commands in this SQLite run log")
	flag.Parse()

	if err := run(*settingsPath, *runs, *recordPath); err != nil {
		fmt.Fprintln(os.Stderr, "gostan:", err)
		os.Exit(1)
	}
}

func run(settingsPath string, runsOverride int, recordPath string) error {
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}

	if settings.Logging.Level != "" {
		logging.SetLogger(logging.NewLogger(logging.Config{
			Severity: logging.ParseSeverity(settings.Logging.Level),
			Outputs:  []logging.Output{logging.NewConsoleOutput(true)},
		}))
	}
	logger := logging.GetLogger()

	cfg, err := settings.OptimizeConfig()
	if err != nil {
		return err
	}

	runs := settings.Run.Runs
	if runsOverride > 0 {
		runs = runsOverride
	}

	runID := uuid.NewString()[:8]
	ctx := logging.WithMethod(logging.WithRunID(context.Background(), runID), cfg.Method().String())
	logger.Info(ctx, "composing %d command(s)", runs)

	commands, err := stanargs.ComposeAll(ctx, cfg, runPrefix{run: settings.Run, runID: runID}, runs)
	if err != nil {
		return err
	}

	var store *runlog.Store
	if recordPath != "" {
		store, err = runlog.NewStore(recordPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logger.Warn(ctx, "failed to close run log: %v", cerr)
			}
		}()
	}

	for idx, argv := range commands {
		logger.Command(ctx, idx, argv)
		if store != nil {
			id, err := store.Record(ctx, cfg.Method(), argv)
			if err != nil {
				return errors.Wrap(err, errors.StorageFailed, "failed to record composed command")
			}
			logger.Debug(ctx, "run %d recorded as %s", idx, id)
		}
		fmt.Println(strings.Join(argv, " "))
	}

	return nil
}
