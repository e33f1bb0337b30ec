package components

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const holdTickInterval = 50 * time.Millisecond

// HoldButton guards a destructive action behind a press-and-hold. The
// action fires only when the button has been held for the full duration;
// releasing or leaving early resets the progress.
type HoldButton struct {
	widget.BaseWidget
	Text         string
	HoldDuration time.Duration
	OnConfirmed  func()

	holding  bool
	hovered  bool
	progress float64
	ticker   *time.Ticker
	stop     chan struct{}
}

// NewHoldButton creates a button that fires onConfirmed after being
// held for the given duration
func NewHoldButton(text string, holdFor time.Duration, onConfirmed func()) *HoldButton {
	b := &HoldButton{
		Text:         text,
		HoldDuration: holdFor,
		OnConfirmed:  onConfirmed,
	}
	b.ExtendBaseWidget(b)
	return b
}

// Tapped implements fyne.Tappable; plain taps never confirm
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// TappedSecondary implements fyne.SecondaryTappable
func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.hovered = false
	b.abortHold()
	b.Refresh()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	if b.holding {
		return
	}
	b.holding = true
	b.progress = 0
	b.stop = make(chan struct{})
	b.ticker = time.NewTicker(holdTickInterval)

	started := time.Now()
	go func(stop chan struct{}, ticker *time.Ticker) {
		for {
			select {
			case <-stop:
				ticker.Stop()
				return
			case <-ticker.C:
				elapsed := time.Since(started)
				done := elapsed >= b.HoldDuration
				fyne.Do(func() {
					b.progress = float64(elapsed) / float64(b.HoldDuration)
					if b.progress > 1 {
						b.progress = 1
					}
					b.Refresh()
					if done {
						b.abortHold()
						if b.OnConfirmed != nil {
							b.OnConfirmed()
						}
					}
				})
				if done {
					ticker.Stop()
					return
				}
			}
		}
	}(b.stop, b.ticker)
	b.Refresh()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.abortHold()
	b.Refresh()
}

func (b *HoldButton) abortHold() {
	if !b.holding {
		return
	}
	b.holding = false
	b.progress = 0
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.ForegroundColor())
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.ButtonColor())
	bg.CornerRadius = theme.InputRadiusSize()
	progressBar := canvas.NewRectangle(theme.ErrorColor())
	progressBar.CornerRadius = theme.InputRadiusSize()

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress fills from left to right while held
	progressWidth := size.Width * float32(r.button.progress)
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	return fyne.NewSize(textSize.Width+theme.Padding()*4, textSize.Height+theme.Padding()*2)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.ForegroundColor()

	if r.button.hovered {
		r.bg.FillColor = theme.HoverColor()
	} else {
		r.bg.FillColor = theme.ButtonColor()
	}

	size := r.bg.Size()
	r.progressBar.Resize(fyne.NewSize(size.Width*float32(r.button.progress), size.Height))

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}
