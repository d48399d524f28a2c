package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/ui"
	"github.com/vellum-app/vellum/internal/workflows"
)

var (
	exportFilesDir string
	exportOrigin   string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFilesDir, "files", "f", "", "directory of attached binary files to upload with the scene")
	exportCmd.Flags().StringVar(&exportOrigin, "origin", "https://app.vellum.dev", "web app origin for the share link")
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportFilesDir = ""
	exportOrigin = "https://app.vellum.dev"
}

var exportCmd = &cobra.Command{
	Use:   "export <scene.json>",
	Args:  cobra.ExactArgs(1),
	Short: "Encrypt a scene and upload it as a share link",
	Long: `Encrypts a local scene under a fresh key and uploads it to the blob backend.

The key never leaves your machine except inside the link fragment, which
browsers do not send in HTTP requests. The backend only ever stores an
opaque encrypted blob under a random id.

Attached files (use --files) are encrypted independently, each under its own
derived subkey with a fresh IV, and uploaded after the scene payload has
been assigned an id. Files over the configured size limit are skipped and
reported; they never block the rest of the export.

Examples:
  # Export a scene
  vellum scene export drawing.json

  # Export a scene together with its image attachments
  vellum scene export drawing.json --files ./attachments

  # Export with verbose output
  vellum scene export drawing.json --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		spinner, cleanup := startSpinner("Encrypting and uploading scene...", verbose)
		defer cleanup()

		result, err := workflows.ExportScene(cmd.Context(), workflows.ExportOptions{
			ScenePath: args[0],
			FilesDir:  exportFilesDir,
			Origin:    exportOrigin,
		})

		switch {
		case err == nil:
			// fallthrough to the success message below
		case errors.Is(err, verrors.ErrSceneNotFound):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Scene file " + ui.Path.Sprint(args[0]) + " not found\n" +
				ui.Info.Sprint("→") + " Check the path and try again"
			return nil
		case errors.Is(err, verrors.ErrConfigNotInitialized):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Vellum has not been configured\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("vellum config init") + " first"
			return nil
		case errors.Is(err, verrors.ErrUploadTooLarge):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " The encrypted scene exceeds the backend's size limit\n" +
				ui.Info.Sprint("→") + " Remove large embedded content and try again"
			return nil
		case errors.Is(err, verrors.ErrUploadFailed):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Upload failed\n" +
				ui.Info.Sprint("→") + " The backend rejected the request; nothing was retried"
			return nil
		default:
			return Logger.ErrorfAndReturn("failed to export scene: %v", err)
		}

		finalMessage := ui.Success.Sprint("✓") + fmt.Sprintf(" Scene exported %s\n",
			ui.Muted.Sprintf("%d elements, %d files", result.ElementCount, result.FileCount)) +
			ui.Info.Sprint("→") + " Share this link: " + ui.Link.Sprint(result.URL)

		for _, skipped := range result.SkippedFiles {
			finalMessage += "\n" + ui.Warning.Sprint("⚠") +
				fmt.Sprintf(" Skipped %s: %d bytes over the upload limit", ui.Highlight.Sprint(string(skipped.ID)), skipped.Size)
		}
		for _, failed := range result.FailedFiles {
			finalMessage += "\n" + ui.Warning.Sprint("⚠") +
				fmt.Sprintf(" Upload failed for %s", ui.Highlight.Sprint(string(failed.ID)))
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
