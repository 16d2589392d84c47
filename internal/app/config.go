package app

import (
	"errors"
	"fmt"

	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/engine"
	"github.com/vk/reactsynth/internal/session"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProblemPaths []string // .ltl and .hcl files or directories

	Engine              string
	UnrollSteps         int
	RiskBound           int
	GroupSize           int
	ParallelSubproblems int
	ProveNonExistence   bool
	FailUnrealizable    bool

	Workers      int
	OutputFormat string
	OutputDir    string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	NodeTableSize    int
	CacheSize        int
	MaxNodeTableSize int
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ProblemPaths) == 0 {
		return nil, errors.New("ProblemPaths is a required configuration field and cannot be empty")
	}
	switch cfg.Engine {
	case "":
		cfg.Engine = config.EngineCoBuechi
	case config.EngineCoBuechi, config.EngineBuechi, config.EngineCompositional:
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
	switch cfg.OutputFormat {
	case "":
		cfg.OutputFormat = FormatText
	case FormatText, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.OutputFormat)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	for name, v := range map[string]int{
		"unroll steps":         cfg.UnrollSteps,
		"risk bound":           cfg.RiskBound,
		"group size":           cfg.GroupSize,
		"parallel subproblems": cfg.ParallelSubproblems,
		"node table size":      cfg.NodeTableSize,
		"cache size":           cfg.CacheSize,
		"max node table size":  cfg.MaxNodeTableSize,
		"healthcheck port":     cfg.HealthcheckPort,
	} {
		if v < 0 {
			return nil, fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return &cfg, nil
}

// engineOptions maps the run settings onto engine options.
func (c *Config) engineOptions() engine.Options {
	return engine.Options{
		Engine:              c.Engine,
		UnrollSteps:         c.UnrollSteps,
		RiskBound:           c.RiskBound,
		GroupSize:           c.GroupSize,
		ParallelSubproblems: c.ParallelSubproblems,
		ProveNonExistence:   c.ProveNonExistence,
		Session: session.Options{
			NodeTableSize:    c.NodeTableSize,
			CacheSize:        c.CacheSize,
			MaxNodeTableSize: c.MaxNodeTableSize,
		},
	}
}
