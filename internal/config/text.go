package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/reactsynth/internal/ctxlog"
)

// TextLoader reads the line-oriented .ltl format.
type TextLoader struct{}

// NewTextLoader returns a TextLoader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// LoadFile reads one .ltl file. The problem is named after the file.
func (l *TextLoader) LoadFile(ctx context.Context, path string) ([]*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open problem file %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p, err := ParseText(name, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse problem file %s: %w", path, err)
	}
	p.Source = path
	ctxlog.FromContext(ctx).Debug("Parsed text problem.", "file", path,
		"inputs", len(p.Inputs), "outputs", len(p.Outputs), "guarantees", len(p.Guarantees))
	return []*Problem{p}, nil
}

var declarations = []struct {
	keyword string
	apply   func(p *Problem, rest string)
}{
	{"INPUT", func(p *Problem, rest string) { p.Inputs = append(p.Inputs, splitSignals(rest)...) }},
	{"OUTPUT", func(p *Problem, rest string) { p.Outputs = append(p.Outputs, splitSignals(rest)...) }},
	{"TIMER", func(p *Problem, rest string) { p.Timers = append(p.Timers, splitSignals(rest)...) }},
	{"ASSUME", func(p *Problem, rest string) { p.Assumptions = append(p.Assumptions, strings.TrimSpace(rest)) }},
}

// ParseText reads a problem in the .ltl format from r.
func ParseText(name string, r io.Reader) (*Problem, error) {
	p := &Problem{Name: name}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "##") || strings.HasPrefix(line, "!--") {
			continue
		}
		matched := false
		for _, d := range declarations {
			rest, ok := cutKeyword(line, d.keyword)
			if !ok {
				continue
			}
			if strings.TrimSpace(rest) == "" {
				return nil, fmt.Errorf("%w: line %d: %s without a value", ErrInvalidProblem, lineNo, d.keyword)
			}
			d.apply(p, rest)
			matched = true
			break
		}
		if !matched {
			p.Guarantees = append(p.Guarantees, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// cutKeyword matches a declaration keyword followed by whitespace.
func cutKeyword(line, keyword string) (string, bool) {
	if !strings.HasPrefix(line, keyword) {
		return "", false
	}
	rest := line[len(keyword):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return rest, true
}

func splitSignals(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
