package main

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

type SettingsWindow struct {
	ts     *TimeStack
	window fyne.Window

	themeSelect    *widget.Select
	autostartCheck *widget.Check

	apiKeyEntry  *widget.Entry
	baseURLEntry *widget.Entry
	modelEntry   *widget.Entry

	templateDaily   *widget.Entry
	templateWeekly  *widget.Entry
	templateMonthly *widget.Entry
	templateYearly  *widget.Entry

	saveButton      *widget.Button
	saveStatusLabel *widget.Label
}

func NewSettingsWindow(ts *TimeStack) *SettingsWindow {
	sw := &SettingsWindow{ts: ts}
	sw.window = ts.app.NewWindow("TimeStack - Settings")
	sw.buildUI()
	return sw
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

func (sw *SettingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("General", sw.buildGeneralTab()),
		container.NewTabItem("Assistant", sw.buildAssistantTab()),
		container.NewTabItem("Report Templates", sw.buildTemplatesTab()),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance

	closeButton := widget.NewButton("Close", func() {
		sw.window.Close()
	})

	buttonRow := container.NewBorder(nil, nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
	)

	sw.window.SetContent(container.NewBorder(nil, container.NewPadded(buttonRow), nil, nil, tabs))
	sw.window.Resize(fyne.NewSize(680, 560))
	sw.window.CenterOnScreen()
}

func (sw *SettingsWindow) buildGeneralTab() fyne.CanvasObject {
	sw.themeSelect = widget.NewSelect([]string{"system", "light", "dark"}, nil)
	sw.themeSelect.SetSelected(sw.ts.settings.Theme)

	sw.autostartCheck = widget.NewCheck("Launch at login", nil)
	sw.autostartCheck.SetChecked(sw.ts.app.Preferences().Bool(prefAutoStart))

	return container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Theme", sw.themeSelect),
			widget.NewFormItem("", sw.autostartCheck),
		),
	)
}

func (sw *SettingsWindow) buildAssistantTab() fyne.CanvasObject {
	sw.apiKeyEntry = widget.NewPasswordEntry()
	sw.apiKeyEntry.SetText(sw.ts.settings.LLMAPIKey)
	sw.apiKeyEntry.SetPlaceHolder("sk-...")

	sw.baseURLEntry = widget.NewEntry()
	sw.baseURLEntry.SetText(sw.ts.settings.LLMBaseURL)
	sw.baseURLEntry.SetPlaceHolder("https://api.openai.com/v1")

	sw.modelEntry = widget.NewEntry()
	sw.modelEntry.SetText(sw.ts.settings.LLMModelName)
	sw.modelEntry.SetPlaceHolder("gpt-4o-mini")

	hint := widget.NewLabel("Reports are generated through any OpenAI-compatible chat completions API.")
	hint.Wrapping = fyne.TextWrapWord

	return container.NewVBox(
		hint,
		widget.NewForm(
			widget.NewFormItem("API key", sw.apiKeyEntry),
			widget.NewFormItem("Base URL", sw.baseURLEntry),
			widget.NewFormItem("Model", sw.modelEntry),
		),
	)
}

func (sw *SettingsWindow) buildTemplatesTab() fyne.CanvasObject {
	newTemplateEntry := func(text string) *widget.Entry {
		entry := widget.NewMultiLineEntry()
		entry.SetText(text)
		entry.Wrapping = fyne.TextWrapWord
		return entry
	}

	sw.templateDaily = newTemplateEntry(sw.ts.settings.ReportDaily)
	sw.templateWeekly = newTemplateEntry(sw.ts.settings.ReportWeekly)
	sw.templateMonthly = newTemplateEntry(sw.ts.settings.ReportMonthly)
	sw.templateYearly = newTemplateEntry(sw.ts.settings.ReportYearly)

	return container.NewAppTabs(
		container.NewTabItem("Daily", sw.templateDaily),
		container.NewTabItem("Weekly", sw.templateWeekly),
		container.NewTabItem("Monthly", sw.templateMonthly),
		container.NewTabItem("Yearly", sw.templateYearly),
	)
}

func (sw *SettingsWindow) save() {
	ctx := context.Background()

	settings := sw.ts.settings
	settings.Theme = sw.themeSelect.Selected
	settings.LLMAPIKey = sw.apiKeyEntry.Text
	settings.LLMBaseURL = sw.baseURLEntry.Text
	settings.LLMModelName = sw.modelEntry.Text
	settings.ReportDaily = sw.templateDaily.Text
	settings.ReportWeekly = sw.templateWeekly.Text
	settings.ReportMonthly = sw.templateMonthly.Text
	settings.ReportYearly = sw.templateYearly.Text

	if err := sw.ts.store.SaveSettings(ctx, settings); err != nil {
		dialog.ShowError(err, sw.window)
		return
	}

	sw.ts.app.Preferences().SetBool(prefAutoStart, sw.autostartCheck.Checked)
	if err := setupAutostart(sw.autostartCheck.Checked); err != nil {
		sw.ts.log.Warn().Err(err).Msg("failed to apply autostart")
	}

	sw.ts.reloadSettings(ctx)
	sw.saveStatusLabel.SetText("Saved")
}
