// Package hint implements the jump-to-hint session: the state machine that
// overlays labels on candidate locations and turns typed characters into a
// cursor jump.
//
// A Session moves through these states:
//
//	Inactive --Activate--> WordHint | LineHint | SearchHint
//	Active*  --Input/SetInput/Backspace--> Active* (narrowed or not-match)
//	Active*  --unique match--> commit, then Inactive
//	Active*  --Backspace on empty input | Disrupt | Finalize--> Inactive
//
// The session talks to three collaborators, all supplied by the host:
//
//   - Scanner discovers targets for a mode (and search query).
//   - Renderer hands out one Layer per editor; layers are owned by the
//     session and released exactly once when it finalizes.
//   - CursorMover moves an editor's cursor to the committed target.
//
// Label generation lives in package label and input classification in
// package narrow; both are pure. The session is not safe for concurrent use:
// the host must deliver events one at a time.
package hint
