package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vellum-app/vellum/internal/ui"
	"github.com/vellum-app/vellum/internal/workflows"
)

var roomOrigin string

func init() {
	roomNewCmd.Flags().StringVar(&roomOrigin, "origin", "https://app.vellum.dev", "web app origin for the room link")
}

var roomNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a collaboration room link",
	Long: `Generates a fresh collaboration room: a random room id and a 22-character
room key. The key is placed in the link fragment only, so it never reaches
the collaboration server.

Examples:
  vellum room new
  vellum room new --origin https://draw.example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		RoomLogger.Infof("Starting room new command")
		spinner, cleanup := startSpinnerWithFlags("Generating room link...", roomVerbose, roomDebug)
		defer cleanup()

		result, err := workflows.NewRoom(cmd.Context(), workflows.RoomOptions{Origin: roomOrigin})
		if err != nil {
			return RoomLogger.ErrorfAndReturn("failed to generate room: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Room " + ui.Highlight.Sprint(result.RoomID) + " created\n" +
			ui.Info.Sprint("→") + " Invite collaborators with: " + ui.Link.Sprint(result.URL)
		return nil
	},
}
