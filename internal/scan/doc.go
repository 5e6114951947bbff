// Package scan discovers hint targets in the visible part of each view.
//
// Word and line modes run a Matcher over every line in range and turn each
// match into a position target. Search mode finds the literal query,
// ignoring case, and reports the runes that directly follow each match so
// that they can be kept out of the label alphabet.
//
// The scanned range is the view's visible lines plus one line above and one
// below, clamped to the document.
package scan
