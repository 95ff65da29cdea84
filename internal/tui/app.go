package tui

import (
	"context"

	"scribe/internal/config"
	"scribe/internal/instance"
	"scribe/internal/log"
	"scribe/internal/shell"
	"scribe/internal/tui/messages"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a terminal session.
type Options struct {
	Config *config.Config
	Stores shell.Stores
	// Launch is opened once the editor is ready.
	Launch string
	// Instance, when set, delivers files forwarded by later launches.
	Instance *instance.Instance
}

// App is a host/view pair driving a Model through a Bridge.
type App struct {
	Bridge *Bridge
	Shell  *shell.Shell
	Model  *Model
}

// Start connects a new bridge to a host and view.
func Start(ctx context.Context, cfg *config.Config, stores shell.Stores) (*App, error) {
	b := NewBridge()
	s, err := shell.Start(ctx, cfg, stores, shell.Frontend{
		Dialogs: b,
		Menu:    b,
		Editor:  b,
		Status:  statusAdapter{b},
		Confirm: b,
		Quit:    b.Quit,
	})
	if err != nil {
		return nil, err
	}
	return &App{
		Bridge: b,
		Shell:  s,
		Model:  NewModel(ctx, cfg, b, shellActions{s}),
	}, nil
}

// Close stops the host and view.
func (a *App) Close() {
	a.Shell.Close()
}

// Run starts the terminal editor and blocks until it quits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := Start(ctx, opts.Config, opts.Stores)
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(a.Model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Send blocks until the program reads it, and the host may change the
	// state before the program runs.
	a.Bridge.SetNotify(func() { go p.Send(messages.RefreshMsg{}) })

	a.Shell.Host.SetLaunchFile(ctx, opts.Launch)
	if opts.Instance != nil {
		go func() {
			err := opts.Instance.Serve(ctx, func(ctx context.Context, path string) {
				a.Shell.Host.SetLaunchFile(ctx, path)
			})
			if err != nil {
				log.LogWithError(err).Warn("Single-instance listener stopped")
			}
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// shellActions sends the model's commands to a running shell.
type shellActions struct {
	s *shell.Shell
}

func (a shellActions) New(ctx context.Context) error    { return a.s.Host.MenuNew(ctx) }
func (a shellActions) Open(ctx context.Context) error   { return a.s.Host.ShowOpenDialog(ctx) }
func (a shellActions) Save(ctx context.Context) error   { return a.s.Host.MenuSave(ctx) }
func (a shellActions) SaveAs(ctx context.Context) error { return a.s.Host.MenuSaveAs(ctx) }
func (a shellActions) Reload(ctx context.Context) error { return a.s.Host.MenuReload(ctx) }
func (a shellActions) ClearRecent() error               { return a.s.Host.ClearRecent() }
func (a shellActions) Close(ctx context.Context)        { a.s.Host.RequestClose(ctx) }
func (a shellActions) MarkDirty()                       { a.s.View.MarkDirty() }
func (a shellActions) CursorMoved(line, col int)        { a.s.View.CursorMoved(line, col) }

func (a shellActions) OpenRecent(ctx context.Context, path string) error {
	return a.s.Host.OpenRecent(ctx, path)
}
