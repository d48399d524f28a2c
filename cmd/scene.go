package cmd

import (
	logger "github.com/vellum-app/vellum/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// SceneCmd groups scene export and import.
	SceneCmd = &cobra.Command{
		Use:   "scene",
		Short: "Export and import end-to-end encrypted scenes",
		Long:  `Provides encrypted export of local scenes to share links and import of shared scenes back to disk.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing scene command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	SceneCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	SceneCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	SceneCmd.AddCommand(exportCmd)
	SceneCmd.AddCommand(importCmd)
}

// Helper functions for testing

// GetSceneCmd returns the SceneCmd for testing.
func GetSceneCmd() *cobra.Command {
	return SceneCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetExportCommandState()
	resetImportCommandState()
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}
