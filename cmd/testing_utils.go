// Package cmd contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and building test CLI instances.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/vellum-app/vellum/internal/configs"
	logger "github.com/vellum-app/vellum/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points the user settings at a temporary directory
// and resets all command state. The original settings are restored on
// cleanup.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempUserDir := t.TempDir()
	originalUserSettings := configs.UserVellumSettings

	t.Cleanup(func() {
		configs.UserVellumSettings = originalUserSettings
		ResetGlobalState()
		ResetRoomCommandState()
		ResetConfigState()
	})

	configs.UserVellumSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
	}

	ResetGlobalState()
	ResetRoomCommandState()
	ResetConfigState()

	// Keep test output deterministic.
	t.Setenv("NO_COLOR", "1")

	return tempUserDir
}

// initializeConfig writes a default user config so commands that need
// endpoints can run without `config init`.
func initializeConfig(t *testing.T) *configs.UserConfig {
	t.Helper()

	userConfig := configs.DefaultUserConfig()
	if err := configs.SaveUserConfig(userConfig); err != nil {
		t.Fatalf("Failed to save user config: %v", err)
	}
	return userConfig
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance wired with the real command
// tree for the given args.
func createTestCLI(args ...string) *cobra.Command {
	// Initialize the loggers directly; PersistentPreRun also does this, but
	// helpers called before Execute may log.
	Logger = logger.Logger{}
	RoomLogger = logger.Logger{}
	ConfigLogger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:   "vellum",
		Short: "Vellum - End-to-end encrypted scene sharing.",
	}

	rootCmd.AddCommand(SceneCmd)
	rootCmd.AddCommand(RoomCmd)
	rootCmd.AddCommand(ConfigCmd)

	rootCmd.SetArgs(args)
	return rootCmd
}

// runCommand executes the CLI with the given args and returns everything it
// printed.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	output, err := captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
	if err != nil {
		t.Fatalf("Command %v failed: %v\nOutput:\n%s", args, err, output)
	}
	return output
}
