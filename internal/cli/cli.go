package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/reactsynth/internal/app"
)

// Exit codes.
const (
	ExitRuntime      = 1
	ExitUsage        = 2
	ExitUnrealizable = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// FromRunError maps an error returned by App.Run onto an ExitError.
func FromRunError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, app.ErrUnrealizable) {
		return &ExitError{Code: ExitUnrealizable, Message: err.Error()}
	}
	return &ExitError{Code: ExitRuntime, Message: err.Error()}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("reactsynth", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
reactsynth - Synthesizes reactive controllers from LTL specifications.

Usage:
  reactsynth [options] [PROBLEM_PATH...]

Arguments:
  PROBLEM_PATH
    Path to a .ltl or .hcl problem file, or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	problemFlag := flagSet.String("problem", "", "Path to a problem file or directory.")
	pFlag := flagSet.String("p", "", "Path to a problem file or directory (shorthand).")
	engineFlag := flagSet.String("engine", "cobuechi", "Synthesis engine. Options: 'cobuechi', 'buechi' or 'compositional'.")
	unrollFlag := flagSet.Int("unroll", 0, "Unroll steps of the safety reduction. 0 uses the default.")
	riskBoundFlag := flagSet.Int("risk-bound", 0, "Visits to risk states tolerated per run. 0 uses the default.")
	groupSizeFlag := flagSet.Int("group-size", 0, "Guarantees per compositional sub-problem. 0 uses the default.")
	parallelFlag := flagSet.Int("parallel", 1, "Sub-problems solved concurrently by the compositional engine.")
	nonExistenceFlag := flagSet.Bool("non-existence", false, "Search for a counter-strategy instead of a controller.")
	workersFlag := flagSet.Int("workers", 1, "Number of problems synthesized concurrently.")
	formatFlag := flagSet.String("format", app.FormatText, "Result format. Options: 'text' or 'yaml'.")
	outFlag := flagSet.String("out", "", "Directory to write one result file per problem. Empty writes to stdout.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	nodeTableFlag := flagSet.Int("node-table", 0, "Initial node table size of each relation engine session. 0 uses the default.")
	cacheSizeFlag := flagSet.Int("cache-size", 0, "Operation cache size of each relation engine session. 0 uses the default.")
	maxNodeTableFlag := flagSet.Int("max-node-table", 0, "Fixed capacity of each relation engine session in nodes. 0 uses the default.")
	failUnrealizableFlag := flagSet.Bool("fail-unrealizable", false, "Exit with code 3 when any problem is not realized.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	for _, p := range []string{*problemFlag, *pFlag} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Problem paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No problem path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProblemPaths:        paths,
		Engine:              strings.ToLower(*engineFlag),
		UnrollSteps:         *unrollFlag,
		RiskBound:           *riskBoundFlag,
		GroupSize:           *groupSizeFlag,
		ParallelSubproblems: *parallelFlag,
		ProveNonExistence:   *nonExistenceFlag,
		FailUnrealizable:    *failUnrealizableFlag,
		Workers:             *workersFlag,
		OutputFormat:        strings.ToLower(*formatFlag),
		OutputDir:           *outFlag,
		LogFormat:           logFormat,
		LogLevel:            logLevel,
		HealthcheckPort:     *healthPortFlag,
		NodeTableSize:       *nodeTableFlag,
		CacheSize:           *cacheSizeFlag,
		MaxNodeTableSize:    *maxNodeTableFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
