// Package renderer draws documents, hint overlays and the status line.
//
// The renderer lays out one pane per open document, side by side, with the
// status line across the bottom:
//
//	┌──────────────┬──────────────┐
//	│ Pane         │ Pane         │  lines, labels, matches
//	├──────────────┴──────────────┤
//	│ StatusLine                  │  mode, file, position, prompt
//	└─────────────────────────────┘
//
// It implements hint.Renderer. Each Layer handed to a session owns the hint
// overlays of one pane, and releasing the layer removes them.
//
// Usage:
//
//	backend, _ := backend.NewTerminal()
//	r := renderer.New(backend, renderer.DefaultOptions())
//	r.AddPane("main", "main.go", buf)
//	r.Render()
package renderer
