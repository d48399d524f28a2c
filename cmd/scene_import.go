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
	importOutputPath string
	importLocalScene string
	importWithFiles  bool
	importFilesDir   string
)

func init() {
	importCmd.Flags().StringVarP(&importOutputPath, "output", "o", "scene.json", "path for the restored scene")
	importCmd.Flags().StringVar(&importLocalScene, "local", "", "local scene whose UI settings survive the merge")
	importCmd.Flags().BoolVar(&importWithFiles, "with-files", false, "also download the attachments the scene references")
	importCmd.Flags().StringVar(&importFilesDir, "files-dir", "", "directory for downloaded attachments (default: <output>.files)")
}

// resetImportCommandState resets the import command's global state for testing.
func resetImportCommandState() {
	importOutputPath = "scene.json"
	importLocalScene = ""
	importWithFiles = false
	importFilesDir = ""
}

var importCmd = &cobra.Command{
	Use:   "import <link>",
	Args:  cobra.ExactArgs(1),
	Short: "Fetch and decrypt a shared scene",
	Long: `Fetches a shared scene by its link, decrypts it locally and writes the
restored scene to disk.

The decryption key is read from the link fragment and never sent anywhere.
Older share links without an IV prefix in the payload are still readable;
new exports always use the current format.

If --local names an existing scene, its UI settings (theme, zoom, scroll
position) survive the merge while the remote content wins for elements and
app state.

Examples:
  # Import a shared scene
  vellum scene import 'https://app.vellum.dev/#json=abc123,<key>'

  # Import including attachments
  vellum scene import 'https://app.vellum.dev/#json=abc123,<key>' --with-files

  # Merge over a local scene
  vellum scene import 'https://app.vellum.dev/#json=abc123,<key>' --local mine.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		spinner, cleanup := startSpinner("Fetching and decrypting scene...", verbose)
		defer cleanup()

		result, err := workflows.ImportScene(cmd.Context(), workflows.ImportOptions{
			Link:           args[0],
			OutputPath:     importOutputPath,
			LocalScenePath: importLocalScene,
			WithFiles:      importWithFiles,
			FilesDir:       importFilesDir,
		})

		switch {
		case err == nil:
			// fallthrough to the success message below
		case errors.Is(err, verrors.ErrInvalidShareLink):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " That does not look like a vellum share link\n" +
				ui.Info.Sprint("→") + " Expected a fragment like " + ui.Code.Sprint("#json=<id>,<key>")
			return nil
		case errors.Is(err, verrors.ErrConfigNotInitialized):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Vellum has not been configured\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("vellum config init") + " first"
			return nil
		case errors.Is(err, verrors.ErrFetchFailed):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Could not fetch the scene from the backend\n" +
				ui.Info.Sprint("→") + " The link may have expired, or the backend is unreachable"
			return nil
		case errors.Is(err, verrors.ErrDecryptionFailed):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " The scene could not be decrypted\n" +
				ui.Info.Sprint("→") + " The key in the link does not match the stored data; the scene is unrecoverable"
			return nil
		case errors.Is(err, verrors.ErrSceneNotFound):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Local scene " + ui.Path.Sprint(importLocalScene) + " not found"
			return nil
		default:
			return Logger.ErrorfAndReturn("failed to import scene: %v", err)
		}

		finalMessage := ui.Success.Sprint("✓") + fmt.Sprintf(" Scene restored to %s %s",
			ui.Path.Sprint(result.OutputPath),
			ui.Muted.Sprintf("%d elements", result.ElementCount))
		if importWithFiles {
			finalMessage += "\n" + ui.Success.Sprint("✓") + fmt.Sprintf(" Downloaded %d attachments", result.FileCount)
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
