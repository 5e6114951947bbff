package app

import (
	"fmt"

	"github.com/dshills/hintjump/internal/config"
	"github.com/dshills/hintjump/internal/hint"
	"github.com/dshills/hintjump/internal/hint/narrow"
	"github.com/dshills/hintjump/internal/input/key"
	"github.com/dshills/hintjump/internal/input/prompt"
	"github.com/dshills/hintjump/internal/plugin/lua"
	"github.com/dshills/hintjump/internal/renderer/statusline"
)

// handleKey routes a key press. An open prompt sees keys first, then an
// active hint session, then the keymap.
func (app *Application) handleKey(k key.Event) error {
	app.renderer.StatusLine().ClearMessage()
	app.renderer.MarkDirty()

	switch {
	case app.search.Active():
		return app.handleSearchKey(k)
	case app.labels.Active():
		return app.handleLabelKey(k)
	case app.session.Active():
		return app.handleHintKey(k)
	}

	action, ok := app.keymap.Lookup(k)
	if !ok {
		return nil
	}
	return app.runAction(action)
}

// handleSearchKey edits the search query. Enter shows search hints.
func (app *Application) handleSearchKey(k key.Event) error {
	out := app.search.HandleKey(k)
	if !out.Consumed && app.keymap.Is(k, config.ActionCancel) {
		out.Action = prompt.ActionDismiss
	}

	switch out.Action {
	case prompt.ActionAccept:
		query := app.search.Value()
		app.search.Close()
		return app.activate(hint.ModeSearchHint, query)
	case prompt.ActionDismiss:
		app.search.Close()
	}
	return nil
}

// handleLabelKey feeds the label prompt to the session. Accepting or
// dismissing the prompt ends the session without a jump.
func (app *Application) handleLabelKey(k key.Event) error {
	out := app.labels.HandleKey(k)
	if !out.Consumed {
		if app.keymap.Is(k, config.ActionCancel) {
			app.cancel("cancel key")
			return nil
		}
		if action, ok := app.keymap.Lookup(k); ok {
			return app.runAction(action)
		}
		return nil
	}

	switch out.Action {
	case prompt.ActionAccept:
		app.disrupt("prompt accepted")
		return nil
	case prompt.ActionDismiss:
		app.cancel("prompt dismissed")
		return nil
	}

	if !out.Changed {
		return nil
	}
	c, err := app.session.SetInput(app.labels.Value())
	if err != nil {
		return err
	}
	app.afterInput(c)
	return nil
}

// handleHintKey narrows an active session keystroke by keystroke.
// Keys that are not label input run their bound action, which disrupts
// the session when it moves the view.
func (app *Application) handleHintKey(k key.Event) error {
	switch {
	case app.keymap.Is(k, config.ActionCancel):
		app.cancel("cancel key")
		return nil

	case k.Key == key.KeyBackspace:
		c, signal, err := app.session.Backspace()
		if err != nil {
			return err
		}
		if signal == narrow.Cancel {
			app.metrics.RecordCancel()
			return nil
		}
		app.afterInput(c)
		return nil

	case k.IsChar():
		c, err := app.session.Input(k.Rune)
		if err != nil {
			return err
		}
		app.afterInput(c)
		return nil
	}

	if action, ok := app.keymap.Lookup(k); ok {
		return app.runAction(action)
	}
	return nil
}

// runAction performs a keymap action.
func (app *Application) runAction(action string) error {
	switch action {
	case config.ActionWordHint:
		return app.activate(hint.ModeWordHint, "")
	case config.ActionLineHint:
		return app.activate(hint.ModeLineHint, "")
	case config.ActionSearchHint:
		app.cancel("search prompt")
		app.search.Open("search")
	case config.ActionCancel:
		app.cancel("cancel key")
	case config.ActionNextPane:
		app.disrupt("focus change")
		app.renderer.FocusNext(1)
	case config.ActionPrevPane:
		app.disrupt("focus change")
		app.renderer.FocusNext(-1)
	case config.ActionScrollDown:
		app.scroll(func(p scroller) { p.ScrollBy(1) })
	case config.ActionScrollUp:
		app.scroll(func(p scroller) { p.ScrollBy(-1) })
	case config.ActionPageDown:
		app.scroll(func(p scroller) { p.ScrollPage(true) })
	case config.ActionPageUp:
		app.scroll(func(p scroller) { p.ScrollPage(false) })
	case config.ActionReload:
		return app.reloadAll()
	case config.ActionQuit:
		return ErrQuit
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

// scroller is the part of a viewport the scroll actions use.
type scroller interface {
	ScrollBy(delta int)
	ScrollPage(down bool)
}

// scroll moves the focused pane. The viewport change disrupts any
// active session.
func (app *Application) scroll(fn func(scroller)) {
	if p := app.renderer.Focused(); p != nil {
		fn(p.Viewport())
	}
}

// activate starts a hint session. In prompt input mode the label prompt
// opens alongside it.
func (app *Application) activate(mode hint.Mode, query string) error {
	app.labels.Close()

	err := app.session.Activate(mode, query)
	app.metrics.RecordActivation(err)
	if err != nil {
		return NewOperationError("activate", mode.String()+" hints", err)
	}

	if countTargets(app.session.Groups()) == 0 {
		app.setMessage(statusline.MessageWarning, "no %s targets", mode)
	}
	if app.inputMode == config.InputPrompt {
		app.labels.Open("label")
	}
	return nil
}

// afterInput finishes a narrowing step.
func (app *Application) afterInput(c narrow.Capability) {
	switch c {
	case narrow.CanNavigate:
		app.labels.Close()
		app.onJump()
	case narrow.NotMatch:
		app.setMessage(statusline.MessageWarning, "no label starts with %q", app.session.InputText())
	}
}

// onJump counts the committed jump and calls the script hook.
func (app *Application) onJump() {
	j, ok := app.session.LastJump()
	if !ok {
		return
	}
	app.metrics.RecordJump()
	if app.script == nil {
		return
	}
	err := app.script.OnJump(lua.JumpEvent{
		Editor: j.Editor,
		Line:   j.Target.Start.Line,
		Column: j.Target.Start.Column,
		Label:  j.Label,
	})
	if err != nil {
		app.reportError(err)
	}
}

// cancel ends an active session at the user's request.
func (app *Application) cancel(reason string) {
	app.labels.Close()
	if !app.session.Active() {
		return
	}
	app.metrics.RecordCancel()
	app.session.Disrupt(reason)
}

// disrupt ends an active session because its targets are stale.
func (app *Application) disrupt(reason string) {
	app.labels.Close()
	if !app.session.Active() {
		return
	}
	app.metrics.RecordDisruption()
	app.session.Disrupt(reason)
}

// refreshStatus mirrors session and prompt state on the status line.
func (app *Application) refreshStatus() {
	sl := app.renderer.StatusLine()

	mode := "NORMAL"
	if app.session.Active() {
		mode = modeLabel(app.session.Mode())
	}
	sl.SetMode(mode)
	sl.SetHintInput(app.session.InputText())

	switch {
	case app.search.Active():
		sl.SetPrompt(true, app.search.Label())
		sl.SetPromptText(app.search.Value(), app.search.CursorPos())
	case app.labels.Active():
		sl.SetPrompt(true, app.labels.Label())
		sl.SetPromptText(app.labels.Value(), app.labels.CursorPos())
	default:
		sl.SetPrompt(false, "")
	}
}

func (app *Application) setMessage(typ statusline.MessageType, format string, args ...any) {
	app.renderer.StatusLine().SetMessage(fmt.Sprintf(format, args...), typ)
	app.renderer.MarkDirty()
}

// modeLabel returns the status line name of a hint mode.
func modeLabel(m hint.Mode) string {
	switch m {
	case hint.ModeWordHint:
		return "WORD"
	case hint.ModeLineHint:
		return "LINE"
	case hint.ModeSearchHint:
		return "SEARCH"
	default:
		return "NORMAL"
	}
}

func countTargets(groups []hint.Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Targets)
	}
	return n
}
