package app

import (
	"errors"

	"github.com/dshills/hintjump/internal/config/watcher"
	"github.com/dshills/hintjump/internal/input/key"
	"github.com/dshills/hintjump/internal/renderer/backend"
	"github.com/dshills/hintjump/internal/renderer/statusline"
)

// eventLoop handles backend events one at a time until quit. Session,
// prompts and renderer are only touched from here.
func (app *Application) eventLoop() error {
	defer app.Quit()

	events := app.startInputPolling()
	app.refreshStatus()
	app.renderer.RenderNow()

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			timer := StartTimer()
			err := app.handleBackendEvent(ev)
			app.metrics.RecordEvent(timer.Elapsed())
			if errors.Is(err, ErrQuit) {
				app.logger.Info("quit")
				return nil
			}
			if err != nil {
				app.reportError(err)
			}
		}

		app.refreshStatus()
		app.renderer.Render()
	}
}

// handleBackendEvent routes a backend event to the appropriate handler.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		k, ok := key.FromBackend(ev)
		if !ok {
			return nil
		}
		return app.handleKey(k)

	case backend.EventResize:
		app.disrupt("resize")
		app.renderer.Resize(ev.Width, ev.Height)
		return nil

	case backend.EventFocus:
		if !ev.Focused {
			app.disrupt("terminal focus lost")
		}
		app.renderer.MarkDirty()
		return nil

	case backend.EventInterrupt:
		if fe, ok := ev.Data.(watcher.Event); ok {
			return app.handleFileEvent(fe)
		}
		return nil

	default:
		return nil
	}
}

// reportError logs err and shows it on the message row.
func (app *Application) reportError(err error) {
	app.logger.Error("%v", err)
	app.setMessage(statusline.MessageError, "%v", err)
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent is blocking, so the goroutine may outlive the loop until the
// backend is shut down.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventNone {
				// Unsupported event, or the backend shut down.
				select {
				case <-app.done:
					return
				default:
					continue
				}
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}
