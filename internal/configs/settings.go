package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
}

var UserVellumSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	// Independent of any project directory, so it is ok to init here.
	UserVellumSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "vellum"),
	}
}
