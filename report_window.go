package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/timestack/pkg/report"
	"github.com/borgmon/timestack/pkg/store"
)

var periodLabels = map[report.Period]string{
	report.PeriodDaily:   "Daily",
	report.PeriodWeekly:  "Weekly",
	report.PeriodMonthly: "Monthly",
	report.PeriodYearly:  "Yearly",
}

type ReportWindow struct {
	ts     *TimeStack
	window fyne.Window

	periodSelect   *widget.Select
	generateButton *widget.Button
	output         *widget.RichText
	historyList    *widget.List
	reports        []*store.Report

	cancelGenerate context.CancelFunc
}

func NewReportWindow(ts *TimeStack) *ReportWindow {
	rw := &ReportWindow{ts: ts}
	rw.window = ts.app.NewWindow("TimeStack - Reports")
	rw.buildUI()
	rw.reloadHistory()
	return rw
}

func (rw *ReportWindow) Show() {
	rw.window.Show()
}

func (rw *ReportWindow) buildUI() {
	labels := make([]string, 0, len(report.Periods))
	for _, p := range report.Periods {
		labels = append(labels, periodLabels[p])
	}
	rw.periodSelect = widget.NewSelect(labels, nil)
	rw.periodSelect.SetSelected(periodLabels[report.PeriodDaily])

	rw.generateButton = widget.NewButtonWithIcon("Generate", theme.MediaPlayIcon(), rw.generate)
	rw.generateButton.Importance = widget.HighImportance

	rw.output = widget.NewRichTextFromMarkdown("Pick a period and press Generate.")
	rw.output.Wrapping = fyne.TextWrapWord

	rw.historyList = widget.NewList(
		func() int { return len(rw.reports) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
				widget.NewLabel(""))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(rw.reports) {
				return
			}
			r := rw.reports[i]
			row := o.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			label.SetText(fmt.Sprintf("%s  %s - %s",
				periodLabels[report.Period(r.Type)],
				r.StartDate.Format("2006-01-02"),
				r.EndDate.AddDate(0, 0, -1).Format("2006-01-02")))
			deleteButton := row.Objects[1].(*widget.Button)
			deleteButton.OnTapped = func() {
				if err := rw.ts.store.DeleteReport(context.Background(), r.ID); err != nil {
					dialog.ShowError(err, rw.window)
					return
				}
				rw.reloadHistory()
			}
		},
	)
	rw.historyList.OnSelected = func(i widget.ListItemID) {
		if i < len(rw.reports) {
			rw.output.ParseMarkdown(rw.reports[i].Content)
		}
		rw.historyList.UnselectAll()
	}

	controls := container.NewHBox(rw.periodSelect, rw.generateButton)
	outputScroll := container.NewScroll(rw.output)

	split := container.NewHSplit(
		container.NewBorder(widget.NewLabel("History"), nil, nil, nil, rw.historyList),
		container.NewBorder(container.NewPadded(controls), nil, nil, nil, outputScroll),
	)
	split.SetOffset(0.3)

	rw.window.SetContent(split)
	rw.window.Resize(fyne.NewSize(860, 620))
	rw.window.CenterOnScreen()
	rw.window.SetOnClosed(func() {
		if rw.cancelGenerate != nil {
			rw.cancelGenerate()
		}
	})
}

func (rw *ReportWindow) selectedPeriod() report.Period {
	for p, label := range periodLabels {
		if label == rw.periodSelect.Selected {
			return p
		}
	}
	return report.PeriodDaily
}

func (rw *ReportWindow) templateFor(p report.Period) string {
	settings := rw.ts.settings
	switch p {
	case report.PeriodWeekly:
		return settings.ReportWeekly
	case report.PeriodMonthly:
		return settings.ReportMonthly
	case report.PeriodYearly:
		return settings.ReportYearly
	default:
		return settings.ReportDaily
	}
}

func (rw *ReportWindow) generate() {
	period := rw.selectedPeriod()
	from, to := period.Range(time.Now())

	items, err := rw.ts.store.ListItemsInRange(context.Background(), from, to)
	if err != nil {
		dialog.ShowError(err, rw.window)
		return
	}

	settings := rw.ts.settings
	generator := report.NewGenerator(settings.LLMAPIKey, settings.LLMBaseURL, settings.LLMModelName, rw.ts.log)
	systemPrompt := rw.templateFor(period)
	userPrompt := report.BuildUserPrompt(items, from, to)

	ctx, cancel := context.WithCancel(context.Background())
	rw.cancelGenerate = cancel

	rw.generateButton.Disable()
	rw.output.ParseMarkdown("_Generating..._")

	go func() {
		defer cancel()

		var partial strings.Builder
		content, err := generator.Generate(ctx, systemPrompt, userPrompt, func(chunk string) {
			partial.WriteString(chunk)
			text := partial.String()
			fyne.Do(func() {
				rw.output.ParseMarkdown(text)
			})
		})
		fyne.Do(func() {
			rw.generateButton.Enable()
			if err != nil {
				dialog.ShowError(err, rw.window)
				return
			}
			rw.output.ParseMarkdown(content)
		})
		if err != nil {
			return
		}

		saved := &store.Report{
			Type:      string(period),
			Content:   content,
			StartDate: from,
			EndDate:   to,
		}
		if err := rw.ts.store.SaveReport(context.Background(), saved); err != nil {
			rw.ts.log.Error().Err(err).Msg("failed to save report")
			return
		}
		fyne.Do(rw.reloadHistory)
	}()
}

func (rw *ReportWindow) reloadHistory() {
	reports, err := rw.ts.store.ListReports(context.Background())
	if err != nil {
		rw.ts.log.Error().Err(err).Msg("failed to load reports")
		return
	}
	rw.reports = reports
	rw.historyList.Refresh()
}
