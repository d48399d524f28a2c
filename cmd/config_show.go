package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vellum-app/vellum/internal/configs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the client configuration with environment overrides applied.

Endpoints can be overridden per run with VELLUM_BACKEND_POST_URL,
VELLUM_BACKEND_GET_URL, VELLUM_FILE_STORE_URL, VELLUM_SOCKET_SERVER_URL,
and VELLUM_FILE_UPLOAD_MAX_BYTES. The values shown here are the ones the
transport will actually use.

Examples:
  # Show the resolved configuration
  vellum config show

  # Output in JSON format
  vellum config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		ConfigLogger.Debugf("Flags: json=%t", configShowJSON)

		ConfigLogger.Debugf("Loading user config from %s", configs.UserVellumSettings.UserConfigsPath)
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			ConfigLogger.Infof("No configuration found")
			if configShowJSON {
				fmt.Println("{}")
				return nil
			}
			fmt.Println(color.YellowString("⚠") + " No configuration found.")
			fmt.Println()
			fmt.Println(color.CyanString("→") + " Run " + color.YellowString("vellum config init") + " to create one")
			return nil
		}

		endpoints := userConfig.ResolveEndpoints()
		maxBytes := userConfig.ResolveFileUploadMaxBytes()
		ConfigLogger.Infof("Config loaded successfully (client: %s)", userConfig.Client.UUID)

		if configShowJSON {
			ConfigLogger.Debugf("Outputting resolved config as JSON")
			resolved := struct {
				ClientUUID         string            `json:"clientUUID"`
				Endpoints          configs.Endpoints `json:"endpoints"`
				FileUploadMaxBytes int64             `json:"fileUploadMaxBytes"`
			}{userConfig.Client.UUID, endpoints, maxBytes}

			output, err := json.MarshalIndent(resolved, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(color.CyanString("Client Configuration") + " (" + configs.UserVellumSettings.UserConfigsPath + "/config.toml):")
		fmt.Println()
		fmt.Printf("  %-18s %s\n", "Client ID:", color.YellowString(userConfig.Client.UUID))
		fmt.Printf("  %-18s %s%s\n", "Backend (post):", color.GreenString(endpoints.BackendPostURL), overrideNote(configs.EnvBackendPostURL))
		fmt.Printf("  %-18s %s%s\n", "Backend (get):", color.GreenString(endpoints.BackendGetURL), overrideNote(configs.EnvBackendGetURL))
		fmt.Printf("  %-18s %s%s\n", "File store:", color.GreenString(endpoints.FileStoreURL), overrideNote(configs.EnvFileStoreURL))
		fmt.Printf("  %-18s %s%s\n", "Socket server:", color.GreenString(endpoints.SocketServerURL), overrideNote(configs.EnvSocketServerURL))
		fmt.Printf("  %-18s %s%s\n", "Upload limit:", color.GreenString(fmt.Sprintf("%d bytes", maxBytes)), overrideNote(configs.EnvFileUploadMaxBytes))
		return nil
	},
}

// overrideNote marks values that came from the environment rather than the file.
func overrideNote(envVar string) string {
	if os.Getenv(envVar) != "" {
		return color.HiBlackString(" (from " + envVar + ")")
	}
	return ""
}
