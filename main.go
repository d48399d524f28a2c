package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vellum-app/vellum/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "vellum",
	Short: "Vellum - end-to-end encrypted sharing for whiteboard scenes.",
	Long: `Vellum shares whiteboard scenes through an untrusted backend without the
backend ever seeing them. Scenes are encrypted on your machine; the
decryption key travels only in the link fragment, which browsers never send
to any server.

Features:
  - Export a scene to an encrypted share link
  - Import a shared scene, attachments included
  - Generate collaboration room links

Usage:
  vellum <command> [flags]

Available Commands:
  scene      Export and import encrypted scenes
  room       Manage collaboration room links
  config     Manage backend endpoints

Run 'vellum help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Vellum! Run 'vellum --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.SceneCmd)
	rootCmd.AddCommand(cmd.RoomCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
