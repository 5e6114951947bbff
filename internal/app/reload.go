package app

import (
	"errors"
	"fmt"

	"github.com/dshills/hintjump/internal/config"
	"github.com/dshills/hintjump/internal/config/watcher"
	"github.com/dshills/hintjump/internal/hint"
	"github.com/dshills/hintjump/internal/plugin/lua"
	"github.com/dshills/hintjump/internal/renderer/backend"
	"github.com/dshills/hintjump/internal/renderer/overlay"
	"github.com/dshills/hintjump/internal/renderer/statusline"
	"github.com/dshills/hintjump/internal/scan"
)

// startWatcher watches the configuration file and every document. Events
// are posted to the backend so that they reach the event loop in order
// with key presses.
func (app *Application) startWatcher() error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	app.watcher = w

	var errs []error
	if path := app.configFile(); path != "" {
		if err := w.Add(path); err != nil {
			errs = append(errs, fmt.Errorf("watch %s: %w", path, err))
		}
	}
	for _, doc := range app.documents.All() {
		if err := w.Add(doc.Path); err != nil {
			errs = append(errs, fmt.Errorf("watch %s: %w", doc.Name, err))
		}
	}

	go app.forwardFileEvents(w)
	return errors.Join(errs...)
}

// forwardFileEvents runs until the watcher is closed.
func (app *Application) forwardFileEvents(w *watcher.Watcher) {
	events, errs := w.Events(), w.Errors()
	for events != nil || errs != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: ev})
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			app.logger.WithComponent("watcher").Warn("%v", err)
		}
	}
}

// handleFileEvent reloads the configuration or the document that changed.
func (app *Application) handleFileEvent(ev watcher.Event) error {
	app.logger.Debug("file %s: %s", ev.Op, ev.Path)
	if ev.Path == app.configFile() {
		return app.reloadConfig()
	}
	if _, ok := app.documents.Get(ev.Path); ok {
		return app.reloadDocument(ev.Path)
	}
	return nil
}

// reloadDocument re-reads a document. An active session is disrupted
// because its targets may no longer exist.
func (app *Application) reloadDocument(path string) error {
	app.disrupt("document reload")

	doc, err := app.documents.Reload(path)
	if err != nil {
		return err
	}
	if p, ok := app.renderer.Pane(doc.Path); ok {
		p.Reloaded()
	}
	app.renderer.MarkDirty()
	app.metrics.RecordReload()
	app.logger.Info("reloaded %s", doc.Name)
	app.setMessage(statusline.MessageInfo, "reloaded %s", doc.Name)
	return nil
}

// reloadConfig re-reads the configuration layers and applies any change.
// Every component is rebuilt from the candidate before anything is swapped
// in, so a rejected configuration leaves the previous one fully in effect.
func (app *Application) reloadConfig() error {
	var staged *stagedConfig
	changed, err := app.config.ReloadWith(func(candidate *config.Config) error {
		st, err := app.prepareConfig(candidate)
		if err != nil {
			return err
		}
		staged = st
		return nil
	})
	if err != nil {
		return NewOperationError("reload", "configuration", err)
	}
	if len(changed) == 0 {
		staged.discard(app.logger)
		return nil
	}

	app.disrupt("config reload")
	app.metrics.RecordReload()
	app.logger.Info("configuration changed: %v", changed)

	app.commitConfig(staged)
	app.setMessage(statusline.MessageInfo, "configuration reloaded")
	return nil
}

// reloadAll reloads every document and the configuration.
func (app *Application) reloadAll() error {
	var errs []error
	for _, doc := range app.documents.All() {
		if err := app.reloadDocument(doc.Path); err != nil {
			errs = append(errs, err)
		}
	}
	if err := app.reloadConfig(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// stagedConfig holds every component built from a configuration, ready
// to be swapped in by commitConfig.
type stagedConfig struct {
	level     LogLevel
	overlay   overlay.Config
	settings  hint.Settings
	script    *lua.Script
	scanner   *scan.Scanner
	inputMode string
	keymap    *Keymap
}

// discard releases a staged configuration that will not be committed.
func (st *stagedConfig) discard(logger *Logger) {
	if st == nil || st.script == nil {
		return
	}
	if err := st.script.Close(); err != nil {
		logger.Warn("close script: %v", err)
	}
}

// prepareConfig builds every live-reloadable component from cfg without
// touching the running ones. View layout settings take effect on restart.
func (app *Application) prepareConfig(cfg *config.Config) (*stagedConfig, error) {
	theme, err := parseTheme(cfg.Theme(), cfg.View())
	if err != nil {
		return nil, err
	}
	hc := cfg.Hint()
	settings, err := hc.Settings()
	if err != nil {
		return nil, err
	}
	km, err := NewKeymap(cfg.Keys())
	if err != nil {
		return nil, err
	}

	script, err := loadScript(hc.Script, app.logger)
	if err != nil {
		return nil, err
	}
	scanner, err := buildScanner(paneSource{r: app.renderer}, hc, script)
	if err != nil {
		if script != nil {
			_ = script.Close()
		}
		return nil, err
	}

	inputMode := hc.Input
	if inputMode == "" {
		inputMode = config.InputKeystroke
	}
	return &stagedConfig{
		level:     ParseLogLevel(cfg.Logging().Level),
		overlay:   theme.overlay,
		settings:  settings,
		script:    script,
		scanner:   scanner,
		inputMode: inputMode,
		keymap:    km,
	}, nil
}

// commitConfig swaps a staged configuration into the running components.
// It cannot fail.
func (app *Application) commitConfig(st *stagedConfig) {
	app.logger.SetLevel(st.level)
	app.renderer.SetOverlayConfig(st.overlay)
	app.session.SetSettings(st.settings)

	if app.script != nil {
		if err := app.script.Close(); err != nil {
			app.logger.Warn("close script: %v", err)
		}
	}
	app.script = st.script
	app.scanner.cur = st.scanner
	app.inputMode = st.inputMode
	app.keymap = st.keymap
}
