// Package ui is the fyne desktop front end for a drawing Model.
package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"ShapeBoard/internal/config"
	"ShapeBoard/internal/net"
	"ShapeBoard/internal/remote"
	"ShapeBoard/internal/shapes"
	"ShapeBoard/internal/state"
	"ShapeBoard/internal/ui/gesture"
)

// Options configures RunApp.
type Options struct {
	Model  *state.Model
	Config config.Config
	// Connect opens a logged-in server connection. Nil runs offline.
	Connect func() (*net.Client, error)
	Logger  *slog.Logger
}

// App holds the window and the state shared by the toolbar, menus and
// board.
type App struct {
	opts   Options
	model  *state.Model
	log    *slog.Logger
	win    fyne.Window
	board  *BoardWidget
	status *widget.Label

	// Pen state not kept by the model.
	fillColor   color.Color
	borderWidth int
	colorTarget string

	mu     sync.Mutex
	client *net.Client
}

// RunApp opens the main window and blocks until it is closed.
func RunApp(opts Options) {
	a := newApp(opts)
	a.win.ShowAndRun()
	a.disconnect()
}

func newApp(opts Options) *App {
	a := &App{
		opts:        opts,
		model:       opts.Model,
		log:         opts.Logger,
		fillColor:   shapes.White,
		borderWidth: 1,
		colorTarget: targetBorder,
		status:      widget.NewLabel("Offline"),
	}
	if a.log == nil {
		a.log = slog.New(slog.DiscardHandler)
	}

	fa := app.NewWithID("shapeboard")
	a.win = fa.NewWindow("ShapeBoard")
	a.win.Resize(fyne.NewSize(1024, 768))

	size := fyne.NewSize(float32(opts.Config.CanvasWidth), float32(opts.Config.CanvasHeight))
	a.board = NewBoardWidget(a.model, size, a.pen)
	a.model.AddObserver(func(state.Event) { a.board.Refresh() })

	a.win.SetMainMenu(a.mainMenu())
	a.addShortcuts()
	content := container.NewBorder(a.newToolbar(), a.status, nil, nil, container.NewScroll(a.board))
	a.win.SetContent(content)

	if opts.Connect != nil {
		go a.connect()
	}
	return a
}

// pen is the style for the next shape drawn on the board.
func (a *App) pen() gesture.Style {
	st := gesture.Style{Border: a.model.CurrentColor(), BorderWidth: a.borderWidth}
	if a.model.Fill() {
		st.Fill = a.fillColor
	}
	return st
}

func (a *App) setStatus(format string, args ...any) {
	a.status.SetText(fmt.Sprintf(format, args...))
}

func (a *App) connect() {
	fyne.Do(func() { a.setStatus("Connecting...") })
	c, err := a.opts.Connect()
	if err != nil {
		a.log.Warn("connect failed", slog.String("error", err.Error()))
		fyne.Do(func() { a.setStatus("Offline: %v", err) })
		return
	}
	a.mu.Lock()
	old := a.client
	a.client = c
	a.mu.Unlock()
	if old != nil {
		old.Close()
	}
	a.log.Info("connected", slog.String("server", c.RemoteAddr()))
	fyne.Do(func() { a.setStatus("Connected to %s", c.RemoteAddr()) })
}

func (a *App) disconnect() {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()
	if c != nil {
		c.Close()
	}
}

func (a *App) syncer() (*remote.Syncer, *net.Client) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client == nil {
		return nil, nil
	}
	return &remote.Syncer{Model: a.model, Drawings: a.client, Logger: a.log, Do: fyne.DoAndWait}, a.client
}

// dropClient forgets c if it is still the current connection.
func (a *App) dropClient(c *net.Client) {
	a.mu.Lock()
	if a.client == c {
		a.client = nil
	}
	a.mu.Unlock()
	c.Close()
}

// serverAction runs op against the server off the UI goroutine and reports
// the outcome in the status bar or an error dialog.
func (a *App) serverAction(name string, op func(*remote.Syncer) (string, error)) {
	s, c := a.syncer()
	if s == nil {
		dialog.ShowInformation(name, "Not connected to a server.", a.win)
		return
	}
	go func() {
		msg, err := op(s)
		fyne.Do(func() {
			if err == nil {
				a.setStatus("%s", msg)
				return
			}
			a.log.Warn("server action failed", slog.String("action", name), slog.String("error", err.Error()))
			if errors.Is(err, net.ErrCommunication) && c.Broken() {
				a.dropClient(c)
				a.setStatus("Disconnected: %v. Use Server > Reconnect.", err)
			}
			dialog.ShowError(fmt.Errorf("%s: %w", name, err), a.win)
		})
	}()
}
