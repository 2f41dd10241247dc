// Package testutil holds shared helpers for the integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/cgpgrid/internal/app"
	"github.com/specialistvlad/cgpgrid/internal/executor"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Best      *executor.Solution
}

// HarnessOptions tweak the app configuration used by RunIntegrationTest.
type HarnessOptions struct {
	// ConfigPath is relative to the temporary root. Empty means the root.
	ConfigPath string
	Workers    int
}

// RunIntegrationTest writes files into a temporary directory, builds an
// app pointed at it and runs it. The loader is chosen from the config
// path's extension, defaulting to HCL.
func RunIntegrationTest(t *testing.T, files map[string]string, opts HarnessOptions) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts HarnessOptions) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	workers := opts.Workers
	if workers == 0 {
		workers = 4
	}
	cfgPath := filepath.Join(tmpDir, opts.ConfigPath)
	appConfig := &app.Config{
		ConfigPath:  cfgPath,
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: workers,
	}

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{}
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("application panicked | %v", r)
		}
		result.LogOutput = logBuffer.String()
		if os.Getenv("CGPGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
		}
	}()

	testApp, err := app.NewApp(ctx, logBuffer, appConfig, app.LoaderFor(cfgPath))
	if err != nil {
		result.Err = err
		return result
	}
	result.App = testApp
	result.Best, result.Err = testApp.Run(ctx)
	return result
}
