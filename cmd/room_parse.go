package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/ui"
	"github.com/vellum-app/vellum/internal/workflows"
)

var roomParseCmd = &cobra.Command{
	Use:   "parse <link>",
	Args:  cobra.ExactArgs(1),
	Short: "Validate a collaboration room link",
	Long: `Checks that a room link is well-formed: a hex room id and a 22-character
room key in the fragment. An invalid key is rejected here, before any
connection or decryption is attempted.

Examples:
  vellum room parse 'https://app.vellum.dev/#room=<id>,<key>'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		RoomLogger.Infof("Starting room parse command")
		spinner, cleanup := startSpinnerWithFlags("Validating room link...", roomVerbose, roomDebug)
		defer cleanup()

		room, err := workflows.ParseRoom(args[0])
		if errors.Is(err, verrors.ErrInvalidRoomLink) {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Invalid room link\n" +
				ui.Info.Sprint("→") + " Expected a fragment like " + ui.Code.Sprint("#room=<id>,<22-char key>")
			return nil
		}
		if err != nil {
			return RoomLogger.ErrorfAndReturn("failed to parse room link: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Valid room link for room " + ui.Highlight.Sprint(room.ID)
		return nil
	},
}
