package main

import (
	"context"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/borgmon/timestack/pkg/audio"
	"github.com/borgmon/timestack/pkg/reminder"
	"github.com/borgmon/timestack/pkg/store"
)

const appID = "com.borgmon.timestack"

type TimeStack struct {
	app      fyne.App
	log      zerolog.Logger
	store    *store.Store
	settings *store.Settings
	checker  *reminder.Checker
	cron     *cron.Cron
	cancel   context.CancelFunc

	mainWindow     *MainWindow
	settingsWindow *SettingsWindow
	reportWindow   *ReportWindow
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ts := &TimeStack{
		app: app.NewWithID(appID),
		log: log,
	}

	if err := ts.initialize(); err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	ts.run()
}

func (ts *TimeStack) initialize() error {
	ctx, cancel := context.WithCancel(context.Background())
	ts.cancel = cancel

	dbPath := filepath.Join(ts.app.Storage().RootURI().Path(), "timestack.db")
	s, err := store.Open(dbPath, ts.log)
	if err != nil {
		return err
	}
	ts.store = s

	settings, err := ts.store.LoadSettings(ctx)
	if err != nil {
		return err
	}
	ts.settings = settings
	applyTheme(ts.app, settings.Theme)

	// Autostart state in the OS follows the stored preference
	if err := setupAutostart(ts.app.Preferences().Bool(prefAutoStart)); err != nil {
		ts.log.Warn().Err(err).Msg("failed to sync autostart")
	}

	ts.checker = reminder.New(ts.store, ts.notify, ts.log)
	ts.checker.Start(ctx)

	ts.mainWindow = NewMainWindow(ts)
	ts.setupSystemTray()
	ts.startMidnightRollover()

	return nil
}

func (ts *TimeStack) run() {
	ts.mainWindow.Show()
	ts.app.Run()
}

// notify delivers a reminder as a desktop notification plus a short
// chime. Runs off the main goroutine; Fyne notifications are safe there.
func (ts *TimeStack) notify(title, body string) {
	ts.app.SendNotification(fyne.NewNotification(title, body))
	audio.PlayChime(ts.log)
}

// startMidnightRollover advances the visible window at day change so a
// machine left running overnight wakes up showing the right days.
func (ts *TimeStack) startMidnightRollover() {
	ts.cron = cron.New()
	_, err := ts.cron.AddFunc("0 0 * * *", func() {
		fyne.Do(func() {
			ts.mainWindow.GoToToday()
			ts.updateSystemTrayMenu()
		})
	})
	if err != nil {
		ts.log.Error().Err(err).Msg("failed to schedule midnight rollover")
		return
	}
	ts.cron.Start()
}

// reloadSettings re-reads settings after a save and applies the parts
// that take effect immediately
func (ts *TimeStack) reloadSettings(ctx context.Context) {
	settings, err := ts.store.LoadSettings(ctx)
	if err != nil {
		ts.log.Error().Err(err).Msg("failed to reload settings")
		return
	}
	ts.settings = settings
	applyTheme(ts.app, settings.Theme)
}

func (ts *TimeStack) showSettingsWindow() {
	if ts.settingsWindow != nil {
		ts.settingsWindow.window.RequestFocus()
		ts.settingsWindow.window.Show()
		return
	}
	ts.settingsWindow = NewSettingsWindow(ts)
	ts.settingsWindow.window.SetOnClosed(func() {
		ts.settingsWindow = nil
	})
	ts.settingsWindow.Show()
}

func (ts *TimeStack) showReportWindow() {
	if ts.reportWindow != nil {
		ts.reportWindow.window.RequestFocus()
		ts.reportWindow.window.Show()
		return
	}
	ts.reportWindow = NewReportWindow(ts)
	ts.reportWindow.window.SetOnClosed(func() {
		ts.reportWindow = nil
	})
	ts.reportWindow.Show()
}

func (ts *TimeStack) quit() {
	if ts.cron != nil {
		ts.cron.Stop()
	}
	if ts.cancel != nil {
		ts.cancel()
	}
	if ts.store != nil {
		if err := ts.store.Close(); err != nil {
			ts.log.Error().Err(err).Msg("failed to close store")
		}
	}
	ts.app.Quit()
}
