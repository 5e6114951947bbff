package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// blockedGlobals load code from outside the script or reach the host.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
	"collectgarbage",
}

// installSandbox removes unsafe globals and replaces print.
func installSandbox(L *lua.LState, print func(string)) {
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		print(strings.Join(parts, "\t"))
		return 0
	}))
}
