package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/ctxlog"
)

// Loader is the HCL implementation of config.FileLoader.
type Loader struct{}

// NewLoader creates a new HCL problem loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile reads every problem block defined in path.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*config.Problem, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read HCL file %s: %w", path, err)
	}
	return l.Parse(ctx, src, path)
}

// Parse decodes problem blocks from src. filename is used in diagnostics
// and recorded as each problem's source.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) ([]*config.Problem, error) {
	logger := ctxlog.FromContext(ctx)

	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	problems := make([]*config.Problem, 0, len(root.Problems))
	for _, block := range root.Problems {
		p, err := translateProblem(ctx, block)
		if err != nil {
			return nil, fmt.Errorf("%s: problem %q: %w", filename, block.Name, err)
		}
		p.Source = filename
		problems = append(problems, p)
	}

	logger.Debug("Parsed HCL problems.", "file", filename, "count", len(problems))
	return problems, nil
}

func translateProblem(ctx context.Context, b *problemBlock) (*config.Problem, error) {
	p := &config.Problem{
		Name:        b.Name,
		Inputs:      b.Inputs,
		Outputs:     b.Outputs,
		Timers:      b.Timers,
		Assumptions: b.Assume,
		Guarantees:  b.Guarantees,
	}
	if b.Engine != nil {
		p.Engine = *b.Engine
	}

	unroll, ok, err := decodeOptionalInt(ctx, b.UnrollSteps, "unroll_steps")
	if err != nil {
		return nil, err
	}
	if ok {
		p.UnrollSteps = unroll
	}

	bound, ok, err := decodeOptionalInt(ctx, b.RiskBound, "risk_bound")
	if err != nil {
		return nil, err
	}
	if ok {
		p.RiskBound = bound
	}
	return p, nil
}
