// Package narrow classifies typed input against the active label set.
//
// Matching is a literal, case-insensitive prefix comparison. Typed input is
// never compiled into a pattern, so characters such as '.', '*' or '(' in a
// label alphabet behave like any other character.
package narrow

import (
	"unicode"
	"unicode/utf8"
)

// Capability is the outcome of classifying typed input.
type Capability uint8

const (
	// NotMatch means no label starts with the input.
	NotMatch Capability = iota

	// Narrowed means more than one label starts with the input.
	Narrowed

	// CanNavigate means exactly one label starts with the input.
	CanNavigate
)

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case NotMatch:
		return "not-match"
	case Narrowed:
		return "narrowed"
	case CanNavigate:
		return "can-navigate"
	default:
		return "unknown"
	}
}

// Result describes which labels survive the current input.
type Result struct {
	// Capability classifies the match count.
	Capability Capability

	// Matches holds, per group, the indices of labels that match.
	// Label index i corresponds to target index i of the same group.
	Matches [][]int

	// Count is the total number of matches across all groups.
	Count int
}

// Single returns the group and index of the unique match.
// ok is false unless the result is CanNavigate.
func (r Result) Single() (group, index int, ok bool) {
	if r.Capability != CanNavigate {
		return 0, 0, false
	}
	for g, idx := range r.Matches {
		if len(idx) == 1 {
			return g, idx[0], true
		}
	}
	return 0, 0, false
}

// Classify matches input against every label of every group.
func Classify(labels [][]string, input string) Result {
	res := Result{Matches: make([][]int, len(labels))}
	for g, group := range labels {
		for i, l := range group {
			if HasPrefix(l, input) {
				res.Matches[g] = append(res.Matches[g], i)
				res.Count++
			}
		}
	}

	switch {
	case res.Count == 0:
		res.Capability = NotMatch
	case res.Count == 1:
		res.Capability = CanNavigate
	default:
		res.Capability = Narrowed
	}
	return res
}

// HasPrefix reports whether label begins with input, ignoring case.
// An empty input matches every label.
func HasPrefix(label, input string) bool {
	for input != "" {
		if label == "" {
			return false
		}
		lr, ls := utf8.DecodeRuneInString(label)
		ir, is := utf8.DecodeRuneInString(input)
		if !equalFold(lr, ir) {
			return false
		}
		label = label[ls:]
		input = input[is:]
	}
	return true
}

// equalFold reports whether a and b are equal under simple case folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

// Append returns input extended by ch. Case is preserved.
func Append(input string, ch rune) string {
	return input + string(ch)
}

// UndoSignal tells the caller what to do after an undo.
type UndoSignal uint8

const (
	// NarrowAgain means the input shrank and should be reclassified.
	NarrowAgain UndoSignal = iota

	// Cancel means there was nothing to undo and the session should end.
	Cancel
)

// String returns the signal name.
func (s UndoSignal) String() string {
	if s == Cancel {
		return "cancel"
	}
	return "narrow-again"
}

// Undo removes the last rune of input.
// When input is already empty it returns Cancel and an empty string.
func Undo(input string) (string, UndoSignal) {
	if input == "" {
		return "", Cancel
	}
	_, size := utf8.DecodeLastRuneInString(input)
	return input[:len(input)-size], NarrowAgain
}
