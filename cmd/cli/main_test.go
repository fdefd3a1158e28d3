package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A description with a syntax error is guaranteed to cause a panic
	// during the loading phase inside app.NewApp().
	invalidHCL := `
		robot "stretch_description" {
			base = "urdf/stretch_description.xacro"
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	descPath := filepath.Join(tempDir, "robot.hcl")
	require.NoError(t, os.WriteFile(descPath, []byte(invalidHCL), 0600))

	fragmentsDir := filepath.Join(tempDir, "fragments")
	manifestsDir := filepath.Join(tempDir, "manifests")
	require.NoError(t, os.Mkdir(fragmentsDir, 0755))
	require.NoError(t, os.Mkdir(manifestsDir, 0755))

	args := []string{
		"-fragments-path", fragmentsDir,
		"-manifests-path", manifestsDir,
		descPath,
	}
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, logs, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ComposesToStdout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	fragmentsDir := filepath.Join(tempDir, "fragments")
	manifestsDir := filepath.Join(tempDir, "manifests")
	require.NoError(t, os.Mkdir(fragmentsDir, 0755))
	require.NoError(t, os.Mkdir(manifestsDir, 0755))

	libraryHCL := `
		fragment "arm" {
			source = "urdf/stretch_arm.xacro"
			driver = "StretchFakeJointDriver"
		}
	`
	require.NoError(t, os.WriteFile(filepath.Join(fragmentsDir, "arm.hcl"), []byte(libraryHCL), 0600))

	descHCL := `
		robot "stretch_description" {
			base = "urdf/stretch_description.xacro"

			argument "use_fake_controllers" {
				type    = bool
				default = false
			}

			when "use_fake_controllers" {
				fragment "arm" {}
			}
		}
	`
	descPath := filepath.Join(tempDir, "robot.hcl")
	require.NoError(t, os.WriteFile(descPath, []byte(descHCL), 0600))

	args := []string{
		"-fragments-path", fragmentsDir,
		"-manifests-path", manifestsDir,
		"-use-fake-controllers", "true",
		descPath,
	}
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, logs, args)

	// --- Assert ---
	require.NoError(t, runErr)
	require.Contains(t, out.String(), `include "base"`)
	require.Contains(t, out.String(), `include "arm"`)
	require.Contains(t, out.String(), `"StretchFakeJointDriver"`)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, logs.String(), "Usage:", "Expected help text to be printed to the log writer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
