package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/fsutil"
)

// Loader reads problems from files and directories.
type Loader interface {
	Load(ctx context.Context, paths ...string) ([]*Problem, error)
}

// FileLoader reads the problems defined in one file.
type FileLoader interface {
	LoadFile(ctx context.Context, path string) ([]*Problem, error)
}

// ExtensionLoader dispatches files to a FileLoader by extension.
type ExtensionLoader struct {
	byExt map[string]FileLoader
}

// NewExtensionLoader returns a loader for the given extensions, which
// include the leading dot.
func NewExtensionLoader(byExt map[string]FileLoader) *ExtensionLoader {
	return &ExtensionLoader{byExt: byExt}
}

// Extensions returns the registered extensions in sorted order.
func (l *ExtensionLoader) Extensions() []string {
	out := make([]string, 0, len(l.byExt))
	for ext := range l.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Load discovers problem files under paths and validates every problem.
func (l *ExtensionLoader) Load(ctx context.Context, paths ...string) ([]*Problem, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Problem loader started.", "path_count", len(paths))

	files, err := fsutil.Discover(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered problem files.", "count", len(files))

	var problems []*Problem
	names := make(map[string]string)
	for _, file := range files {
		loader := l.byExt[filepath.Ext(file)]
		loaded, err := loader.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, p := range loaded {
			if err := p.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			if prev, dup := names[p.Name]; dup {
				return nil, fmt.Errorf("%w: problem %q defined in %s and %s", ErrInvalidProblem, p.Name, prev, file)
			}
			names[p.Name] = file
			problems = append(problems, p)
		}
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("%w: no problems found", ErrInvalidProblem)
	}

	logger.Debug("Problem loading complete.", "problems", len(problems))
	return problems, nil
}
