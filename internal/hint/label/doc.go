// Package label generates the short codes overlaid on jump targets.
//
// Two allocation policies are supported:
//
//   - Fixed: every label has the same length. Labels are the Cartesian power
//     of the alphabet enumerated in alphabet order, so with the alphabet
//     "asdf" and length 2 the sequence starts "aa", "as", "ad", "af", "sa".
//   - Variable: labels form a prefix-free code built breadth-first, so the
//     shortest labels go to the last targets and no label is a prefix of
//     another. The enumeration order is stable for a given target count,
//     which keeps labels in the same place across repeated activations.
//
// Neither policy fails when the alphabet cannot supply enough labels. The
// generators return fewer labels than requested (a shortfall) and callers
// leave the excess targets unlabeled.
//
// Distribute splits a flat label list across groups (one group per editor)
// preserving order.
package label
