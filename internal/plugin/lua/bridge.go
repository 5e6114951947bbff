package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// toColumns converts a script's target list into [start, end) byte ranges
// within a line of length lineLen.
//
// Each array entry is either a 1-based column number or a {start, finish}
// pair of 1-based inclusive columns. Entries outside the line and non-numeric
// values are dropped.
func toColumns(lv lua.LValue, lineLen int) [][2]int {
	tbl, ok := lv.(*lua.LTable)
	if !ok {
		return nil
	}

	var out [][2]int
	n := tbl.Len()
	for i := 1; i <= n; i++ {
		start, end, ok := entryRange(tbl.RawGetInt(i))
		if !ok {
			continue
		}
		if start < 0 || start > lineLen {
			continue
		}
		end = min(max(end, start), lineLen)
		out = append(out, [2]int{start, end})
	}
	return out
}

// entryRange reads one entry as a 0-based half-open range.
func entryRange(lv lua.LValue) (start, end int, ok bool) {
	switch v := lv.(type) {
	case lua.LNumber:
		start = int(v) - 1
		return start, start, true
	case *lua.LTable:
		first, ok := v.RawGetInt(1).(lua.LNumber)
		if !ok {
			return 0, 0, false
		}
		start = int(first) - 1
		end = start
		if last, ok := v.RawGetInt(2).(lua.LNumber); ok {
			end = int(last)
		}
		return start, end, true
	default:
		return 0, 0, false
	}
}
