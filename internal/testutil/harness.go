package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/rigcompose/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a composition test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunComposeTest provides a standardized harness for end-to-end composition
// tests. The files map uses paths relative to a temporary root (e.g.
// "fragments/arm.hcl", "manifests/stretch.yaml", "robot.hcl"); the entry
// named by description is loaded as the robot document.
func RunComposeTest(t *testing.T, files map[string]string, description string, fake *bool) *HarnessResult {
	t.Helper()
	return RunComposeTestWithContext(context.Background(), t, files, description, fake)
}

// RunComposeTestWithContext is RunComposeTest with a caller-provided context.
func RunComposeTestWithContext(ctx context.Context, t *testing.T, files map[string]string, description string, fake *bool) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()

	fragmentsDir := filepath.Join(tmpDir, "fragments")
	manifestsDir := filepath.Join(tmpDir, "manifests")
	require.NoError(t, os.Mkdir(fragmentsDir, 0755))
	require.NoError(t, os.Mkdir(manifestsDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		DescriptionPath: filepath.Join(tmpDir, description),
		FragmentsPath:   fragmentsDir,
		ManifestsPath:   manifestsDir,
		LogLevel:        "debug",
		LogFormat:       "text",

		UseFakeControllers: fake,
	}

	logBuffer := &SafeBuffer{}
	outBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(outBuffer, logBuffer, appConfig)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("RIGCOMPOSE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
