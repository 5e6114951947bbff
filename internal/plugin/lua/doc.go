// Package lua runs user scripts that customize hint targets.
//
// A script is an ordinary Lua file executed in a restricted state: only the
// base, table, string and math libraries are available, file loading
// functions are removed and print is routed to the host logger. Every call
// into the script runs under a timeout.
//
// A script may define any of these globals:
//
//	word_targets(line) -> { col, ... }   -- 1-based start columns
//	line_targets(line) -> { col, ... }
//	on_jump(editor, line, col, label)    -- called after each jump, 1-based
//
// word_targets and line_targets replace the configured word and line
// patterns. Entries may also be {start, finish} pairs; finish is ignored
// for position targets.
package lua
