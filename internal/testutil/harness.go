package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/reactsynth/internal/app"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Summary   *app.Summary
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext writes files into a temporary problem
// directory, points cfg at it and runs the whole batch. Startup panics are
// returned as errors.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	problemDir := filepath.Join(t.TempDir(), "problems")
	for name, content := range files {
		path := filepath.Join(problemDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if len(cfg.ProblemPaths) == 0 {
		cfg.ProblemPaths = []string{problemDir}
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &app.SafeBuffer{}
	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			panicErr = recover()
		}()
		testApp = app.NewApp(logBuffer, appConfig, app.DefaultLoader())
	}()

	if os.Getenv("REACTSYNTH_TEST_LOGS") == "true" {
		t.Cleanup(func() {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		})
	}

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	summary, runErr := testApp.Run(ctx)
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Summary:   summary,
	}
}
