package cmd

import (
	logger "github.com/vellum-app/vellum/internal/logging"
	"github.com/spf13/cobra"
)

var (
	roomVerbose bool
	roomDebug   bool
	RoomLogger  logger.Logger

	// RoomCmd groups collaboration room link management.
	RoomCmd = &cobra.Command{
		Use:   "room",
		Short: "Manage collaboration room links",
		Long:  `Generates and validates collaboration room links. The room key lives only in the link fragment.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			RoomLogger = logger.Logger{
				Verbose: roomVerbose,
				Debug:   roomDebug,
			}
			RoomLogger.Debugf("Initializing room command with verbose=%t, debug=%t", roomVerbose, roomDebug)
		},
	}
)

func init() {
	RoomCmd.PersistentFlags().BoolVarP(&roomVerbose, "verbose", "v", false, "enable verbose output")
	RoomCmd.PersistentFlags().BoolVarP(&roomDebug, "debug", "d", false, "enable debug output")

	RoomCmd.AddCommand(roomNewCmd)
	RoomCmd.AddCommand(roomParseCmd)
}

// GetRoomCmd returns the RoomCmd for testing.
func GetRoomCmd() *cobra.Command {
	return RoomCmd
}

// ResetRoomCommandState resets room command globals for testing.
func ResetRoomCommandState() {
	roomVerbose = false
	roomDebug = false
	roomOrigin = "https://app.vellum.dev"
}
