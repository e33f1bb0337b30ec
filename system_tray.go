package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/borgmon/timestack/pkg/models"
)

const trayUpcomingLimit = 5

func (ts *TimeStack) setupSystemTray() {
	ts.updateSystemTrayMenu()
}

func (ts *TimeStack) updateSystemTrayMenu() {
	desk, ok := ts.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	upcoming := ts.upcomingTodayItems(trayUpcomingLimit)
	if len(upcoming) > 0 {
		header := fyne.NewMenuItem("Upcoming Today:", nil)
		header.Disabled = true
		menuItems = append(menuItems, header)

		for _, item := range upcoming {
			entry := fyne.NewMenuItem(fmt.Sprintf("  %s - %s",
				item.Start().Format("3:04 PM"),
				truncateString(item.ItemTitle(), 35)), nil)
			entry.Disabled = true
			menuItems = append(menuItems, entry)
		}
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Open TimeStack", func() {
			ts.mainWindow.Show()
		}),
		fyne.NewMenuItem("New Item", func() {
			ts.mainWindow.Show()
			ts.mainWindow.showCreateItemDialog()
		}),
		fyne.NewMenuItem("Reports", func() {
			ts.showReportWindow()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			ts.quit()
		}),
	)

	desk.SetSystemTrayMenu(fyne.NewMenu("TimeStack", menuItems...))
	desk.SetSystemTrayIcon(theme.CalendarIcon())
}

// upcomingTodayItems returns the next few items starting between now
// and midnight, soonest first
func (ts *TimeStack) upcomingTodayItems(limit int) []models.CalendarItem {
	now := time.Now()
	todayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	items, err := ts.store.ListItemsInRange(context.Background(), now, todayEnd)
	if err != nil {
		ts.log.Error().Err(err).Msg("failed to load tray items")
		return nil
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Start().Before(items[j].Start()) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
