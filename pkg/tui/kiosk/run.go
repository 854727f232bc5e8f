package kiosk

import (
	"context"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/kiosk/pkg/board"
	"tableflip.dev/kiosk/pkg/clock"
	"tableflip.dev/kiosk/pkg/gesture"
	"tableflip.dev/kiosk/pkg/loop"
	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/store"
	"tableflip.dev/kiosk/pkg/taskapi"
)

// Options wires the kiosk to its collaborators.
type Options struct {
	Config *store.Config
	API    taskapi.Service
	Hooks  power.Hooks
	Store  store.Persistence
	Logger *slog.Logger
}

// BoardConfig converts file settings to board settings.
func BoardConfig(c *store.Config) board.Config {
	cfg := board.DefaultConfig()
	cfg.RefreshInterval = c.RefreshInterval
	cfg.CompleteDelay = c.CompleteDelay
	cfg.MaxFailures = c.MaxFailures
	cfg.ShowCompleted = c.ShowCompleted
	cfg.Gap = rowGap * c.CellHeight
	cfg.Gesture = gesture.Config{
		Hold:           c.Hold,
		Deadzone:       c.Deadzone,
		SwipeThreshold: c.SwipeThreshold,
	}
	cfg.Power = power.Config{
		IdleTimeout:   c.IdleTimeout,
		CheckInterval: c.CheckInterval,
		Window:        power.NightWindow{Start: c.NightStart, End: c.NightEnd},
	}
	return cfg
}

// Run shows the kiosk until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var p *tea.Program
	poster := loop.PostFunc(func(fn func()) {
		p.Send(dispatchMsg{fn: fn})
	})

	b := board.New(BoardConfig(opts.Config), board.Deps{
		API:   opts.API,
		Hooks: opts.Hooks,
		Store: opts.Store,
		Clock: loop.BindClock(clock.Real(), poster),
		Exec:  loop.NewExecutor(ctx, poster),
	})
	b.SetLogger(logger)

	m := New(b, Geometry{
		Width:      80,
		Height:     24,
		CellWidth:  opts.Config.CellWidth,
		CellHeight: opts.Config.CellHeight,
	})
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	events, err := store.Watch(ctx, opts.Store)
	if err != nil {
		logger.Warn("order store not watched", "err", err)
	} else {
		go func() {
			for range events {
				poster.Post(b.OrderChanged)
			}
		}()
	}

	opts.Config.OnChange(func(next *store.Config) {
		poster.Post(func() { b.ApplyConfig(BoardConfig(next)) })
	}, func(err error) {
		logger.Warn("config change ignored", "err", err)
	})

	_, err = p.Run()
	return err
}
