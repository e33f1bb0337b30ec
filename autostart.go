package main

import (
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// prefAutoStart is the Fyne preference key for launching at login.
// Autostart is a per-machine concern, so it lives in preferences rather
// than the shared settings table.
const prefAutoStart = "autostart"

func setupAutostart(enable bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return err
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return err
	}

	app := &autostart.App{
		Name:        "timestack",
		DisplayName: "TimeStack",
		Exec:        []string{execPath},
	}

	if enable {
		if !app.IsEnabled() {
			return app.Enable()
		}
		return nil
	}
	if app.IsEnabled() {
		return app.Disable()
	}
	return nil
}
