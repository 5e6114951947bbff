// Package app wires configuration, documents, the renderer and the hint
// session into the interactive viewer and runs its event loop.
package app

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/hintjump/internal/config"
	"github.com/dshills/hintjump/internal/config/watcher"
	"github.com/dshills/hintjump/internal/hint"
	"github.com/dshills/hintjump/internal/input/prompt"
	"github.com/dshills/hintjump/internal/plugin/lua"
	"github.com/dshills/hintjump/internal/renderer"
	"github.com/dshills/hintjump/internal/renderer/backend"
)

// Application owns one hint session and everything it draws on.
// All methods except Quit must be called from the event loop goroutine.
type Application struct {
	opts Options

	config  *config.Config
	logger  *Logger
	logFile *os.File
	metrics *Metrics

	backend   backend.Backend
	renderer  *renderer.Renderer
	documents *DocumentManager
	watcher   *watcher.Watcher

	session   *hint.Session
	scanner   *scannerRef
	script    *lua.Script
	keymap    *Keymap
	inputMode string

	// search collects a query before search hints are shown; labels
	// collects the label in prompt input mode.
	search *prompt.Prompt
	labels *prompt.Prompt

	// jumping suppresses viewport disruptions caused by a committed jump.
	jumping bool

	running   atomic.Bool
	done      chan struct{}
	quitOnce  sync.Once
	closeOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means the default
	// location, which may be missing; an explicit path must exist.
	ConfigPath string

	// Files are the documents to show, one pane each.
	Files []string

	// LogLevel and LogFile override the [logging] section when set.
	LogLevel string
	LogFile  string

	// LogOutput receives log records instead of the configured file.
	LogOutput io.Writer
}

// New loads the configuration, opens every file and prepares the
// renderer and hint session on b. The backend is initialized by Run.
func New(opts Options, b backend.Backend) (*Application, error) {
	if len(opts.Files) == 0 {
		return nil, ErrNoFiles
	}

	app := &Application{
		opts:      opts,
		backend:   b,
		documents: NewDocumentManager(),
		metrics:   NewMetrics(),
		search:    prompt.New(),
		labels:    prompt.New(),
		done:      make(chan struct{}),
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	if err := app.initLogger(); err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	for _, path := range opts.Files {
		if _, err := app.documents.Open(path); err != nil {
			app.Close()
			return nil, &InitError{Component: "documents", Err: err}
		}
	}

	if err := app.initRenderer(); err != nil {
		app.Close()
		return nil, &InitError{Component: "renderer", Err: err}
	}

	staged, err := app.prepareConfig(cfg)
	if err != nil {
		app.Close()
		return nil, &InitError{Component: "hint", Err: err}
	}
	app.scanner = &scannerRef{}
	app.session = hint.NewSession(app.scanner, app.renderer, paneMover{app: app},
		hint.WithLogger(app.logger.WithComponent("hint")),
		hint.WithSettings(staged.settings),
	)
	app.commitConfig(staged)

	app.logger.Info("opened %d documents, config %s", app.documents.Count(), describeConfig(cfg))
	return app, nil
}

// loadConfig builds the layered configuration for opts.
func loadConfig(opts Options) (*config.Config, error) {
	path, required := opts.ConfigPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}

	cfgOpts := []config.Option{config.WithFile(path, required)}
	if opts.LogLevel != "" {
		cfgOpts = append(cfgOpts, config.WithOverride("logging.level", opts.LogLevel))
	}
	if opts.LogFile != "" {
		cfgOpts = append(cfgOpts, config.WithOverride("logging.file", opts.LogFile))
	}

	cfg := config.New(cfgOpts...)
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func describeConfig(cfg *config.Config) string {
	if cfg.Path() == "" {
		return "defaults"
	}
	return cfg.Path()
}

// initLogger opens the log destination from the [logging] section.
func (app *Application) initLogger() error {
	lc := app.config.Logging()
	out := app.opts.LogOutput
	if out == nil && lc.File != "" {
		f, err := OpenLogFile(expandHome(lc.File))
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(lc.Level),
		Output: out,
		Prefix: "hintjump",
	})
	return nil
}

// initRenderer creates the renderer with one pane per document.
func (app *Application) initRenderer() error {
	view := app.config.View()
	theme, err := parseTheme(app.config.Theme(), view)
	if err != nil {
		return err
	}

	opts := renderer.DefaultOptions()
	opts.ShowLineNumbers = view.LineNumbers
	opts.TabWidth = view.TabWidth
	opts.ScrollMargin = view.ScrollMargin
	opts.Overlay = theme.overlay
	opts.GutterStyle = theme.gutter
	opts.SeparatorStyle = theme.separator

	app.renderer = renderer.New(app.backend, opts)
	for _, doc := range app.documents.All() {
		p := app.renderer.AddPane(doc.Path, doc.Name, doc.Buffer)
		p.Viewport().OnChange(func(top, bottom uint32) {
			if app.jumping {
				return
			}
			app.disrupt("viewport change")
		})
	}
	return nil
}

// Run initializes the backend and processes events until quit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.Close()

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.renderer.Resize(app.backend.Size())

	if err := app.startWatcher(); err != nil {
		app.logger.Warn("file watching disabled: %v", err)
	}

	return app.eventLoop()
}

// Quit stops the event loop. It is safe to call from any goroutine.
func (app *Application) Quit() {
	app.quitOnce.Do(func() {
		close(app.done)
	})
}

// Close ends any hint session and releases the watcher, script and log
// file. It is idempotent.
func (app *Application) Close() {
	app.closeOnce.Do(func() {
		app.Quit()
		if app.session != nil {
			app.session.Finalize()
		}
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.Warn("close watcher: %v", err)
			}
		}
		if app.script != nil {
			if err := app.script.Close(); err != nil {
				app.logger.Warn("close script: %v", err)
			}
		}
		if app.logger != nil {
			app.logger.Info("session stats: %s", app.metrics.Snapshot())
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Session returns the hint session.
func (app *Application) Session() *hint.Session {
	return app.session
}

// Documents returns the document manager.
func (app *Application) Documents() *DocumentManager {
	return app.documents
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the session counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// configFile returns the absolute configuration path, or "".
func (app *Application) configFile() string {
	if app.config.Path() == "" {
		return ""
	}
	abs, err := filepath.Abs(app.config.Path())
	if err != nil {
		return app.config.Path()
	}
	return abs
}
