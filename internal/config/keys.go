package config

// Action names used in the [keys] section.
const (
	ActionWordHint   = "word_hint"
	ActionLineHint   = "line_hint"
	ActionSearchHint = "search_hint"
	ActionCancel     = "cancel"
	ActionNextPane   = "next_pane"
	ActionPrevPane   = "prev_pane"
	ActionScrollDown = "scroll_down"
	ActionScrollUp   = "scroll_up"
	ActionPageDown   = "page_down"
	ActionPageUp     = "page_up"
	ActionReload     = "reload"
	ActionQuit       = "quit"
)

// Actions lists every bindable action.
var Actions = []string{
	ActionWordHint,
	ActionLineHint,
	ActionSearchHint,
	ActionCancel,
	ActionNextPane,
	ActionPrevPane,
	ActionScrollDown,
	ActionScrollUp,
	ActionPageDown,
	ActionPageUp,
	ActionReload,
	ActionQuit,
}

func knownAction(name string) bool {
	for _, a := range Actions {
		if a == name {
			return true
		}
	}
	return false
}
