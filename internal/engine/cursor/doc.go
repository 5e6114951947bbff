// Package cursor provides the selection model a pane's cursor lives in.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. A jump to a position target produces such a collapsed
// selection; a jump to a search match selects the match, anchored at its
// start.
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
