package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/vellum-app/vellum/internal/configs"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing configuration")
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize your client configuration",
	Long: `Creates the client configuration file with a fresh client id and the
default endpoints.

The file lives at ~/.config/vellum/config.toml (platform dependent) and
holds the backend, file store, and collaboration server URLs plus the
per-file upload limit. An existing configuration is left untouched unless
--force is given.

Examples:
  # Create the configuration
  vellum config init

  # Start over with new defaults and a new client id
  vellum config init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")

		configPath := filepath.Join(configs.UserVellumSettings.UserConfigsPath, "config.toml")

		if configs.ConfigExists() && !configInitForce {
			userConfig, err := configs.LoadUserConfig()
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
			}

			fmt.Println(color.GreenString("✓") + " Configuration already exists at " + color.YellowString(configPath))
			fmt.Println()
			fmt.Println("  Client ID: " + color.YellowString(userConfig.Client.UUID))
			fmt.Println()
			fmt.Println(color.CyanString("→") + " Run " + color.YellowString("vellum config init --force") + " to start over")
			return nil
		}

		userConfig := configs.DefaultUserConfig()
		ConfigLogger.Debugf("Generated client id %s", userConfig.Client.UUID)

		if err := configs.SaveUserConfig(userConfig); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save user config: %v", err)
		}

		fmt.Println()
		banner := figure.NewColorFigure("Vellum", "alligator2", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Println(color.GreenString("✓") + " Configuration saved to " + color.YellowString(configPath))
		fmt.Println()
		fmt.Println("Your settings:")
		fmt.Println("  Client ID: " + color.YellowString(userConfig.Client.UUID))
		fmt.Println("  Backend:   " + color.CyanString(userConfig.Endpoints.BackendPostURL))
		fmt.Println("  Files:     " + color.CyanString(userConfig.Endpoints.FileStoreURL))
		fmt.Println()
		fmt.Println(color.CyanString("→") + " Run " + color.YellowString("vellum scene export <scene.json>") + " to share a scene")
		return nil
	},
}
