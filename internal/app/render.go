package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/vk/reactsynth/internal/engine"
	"github.com/vk/reactsynth/internal/mealy"
)

type resultDocument struct {
	Problem         string         `yaml:"problem"`
	Engine          string         `yaml:"engine"`
	Mode            engine.Mode    `yaml:"mode"`
	Verdict         engine.Verdict `yaml:"verdict"`
	StrategyFound   bool           `yaml:"strategy_found"`
	Message         string         `yaml:"message,omitempty"`
	Error           string         `yaml:"error,omitempty"`
	Witness         []string       `yaml:"witness,omitempty"`
	Diagnostics     []string       `yaml:"diagnostics,omitempty"`
	UnknownLiterals []string       `yaml:"unknown_literals,omitempty"`
	Timers          []string       `yaml:"timers,omitempty"`
	SkippedIDs      int            `yaml:"skipped_ids,omitempty"`
	Elapsed         string         `yaml:"elapsed"`
	Machine         *mealy.Machine `yaml:"machine,omitempty"`
}

func newResultDocument(r *engine.Result) resultDocument {
	doc := resultDocument{
		Problem:         r.Problem,
		Engine:          r.Engine,
		Mode:            r.Mode,
		Verdict:         r.Verdict(),
		StrategyFound:   r.StrategyFound,
		Message:         r.Message,
		Witness:         r.Witness,
		Diagnostics:     r.Diagnostics,
		UnknownLiterals: r.UnknownLiterals,
		Timers:          r.Timers,
		SkippedIDs:      r.SkippedIDs,
		Elapsed:         r.Elapsed.String(),
		Machine:         r.Machine,
	}
	if r.Err != nil {
		doc.Error = r.Err.Error()
	}
	return doc
}

// render writes every result to stdout, or to one file per problem when
// OutputDir is set.
func (a *App) render(s *Summary) error {
	if a.config.OutputDir == "" {
		for _, r := range s.Results {
			if err := a.writeResult(a.outW, r); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
		return err
	}
	ext := ".txt"
	if a.config.OutputFormat == FormatYAML {
		ext = ".yaml"
	}
	for _, r := range s.Results {
		path := filepath.Join(a.config.OutputDir, r.Problem+ext)
		if err := a.writeFile(path, r); err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s %s -> %s\n", a.verdictLabel(r.Verdict()), r.Problem, path)
	}
	return nil
}

func (a *App) writeFile(path string, r *engine.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return a.writeResult(f, r)
}

func (a *App) writeResult(w io.Writer, r *engine.Result) error {
	if a.config.OutputFormat == FormatYAML {
		out, err := yaml.Marshal(newResultDocument(r))
		if err != nil {
			return fmt.Errorf("failed to encode result for %s: %w", r.Problem, err)
		}
		if _, err := fmt.Fprintf(w, "---\n%s", out); err != nil {
			return err
		}
		return nil
	}
	return a.writeText(w, r)
}

func (a *App) writeText(w io.Writer, r *engine.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s (%s, %s) ==\n", r.Problem, r.Engine, r.Mode)
	fmt.Fprintf(&b, "verdict: %s\n", a.verdictLabel(r.Verdict()))
	if r.Message != "" {
		fmt.Fprintf(&b, "message: %s\n", r.Message)
	}
	if r.Err != nil {
		fmt.Fprintf(&b, "error: %v\n", r.Err)
	}
	if len(r.Witness) > 0 {
		fmt.Fprintf(&b, "witness: %s\n", strings.Join(r.Witness, ", "))
	}
	if len(r.Timers) > 0 {
		fmt.Fprintf(&b, "timers: %s\n", strings.Join(r.Timers, ", "))
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "note: %s\n", d)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if r.Machine != nil {
		if err := r.Machine.WriteText(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// verdictLabel colours the verdict when writing to a terminal.
func (a *App) verdictLabel(v engine.Verdict) string {
	var c *color.Color
	switch v {
	case engine.VerdictRealizable:
		c = color.New(color.FgGreen, color.Bold)
	case engine.VerdictUnrealizable:
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.FgYellow)
	}
	if a.colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(strings.ToUpper(string(v)))
}
