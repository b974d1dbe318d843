package core

import "strings"

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: "quit", Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"tab"}, Action: "next-field", Description: "next field", Scopes: []string{ScopeForm}},
		{Keys: []string{"shift+tab"}, Action: "prev-field", Description: "prev field", Scopes: []string{ScopeForm}},
		{Keys: []string{"up"}, Action: "suggestion-up", Description: "prev", Scopes: []string{ScopeForm}},
		{Keys: []string{"down"}, Action: "suggestion-down", Description: "next", Scopes: []string{ScopeForm}},
		{Keys: []string{"enter"}, Action: "pick", Description: "select", Scopes: []string{ScopeForm}},
		{Keys: []string{"ctrl+x"}, Action: "remove-last", Description: "remove last", Scopes: []string{ScopeForm}},
		{Keys: []string{"esc"}, Action: "dismiss", Description: "hide suggestions", Scopes: []string{ScopeForm}},
		{Keys: []string{"ctrl+s"}, Action: "submit", Description: "submit", Scopes: []string{ScopeForm}},
		{Keys: []string{"ctrl+p"}, Action: "progress", Description: "progress", Scopes: []string{ScopeForm}},
		{Keys: []string{"ctrl+o"}, Action: "upload", Description: "upload", Scopes: []string{ScopeForm}},
		{Keys: []string{"ctrl+l"}, Action: "history", Description: "history", Scopes: []string{ScopeForm}},
		{Keys: []string{"enter"}, Action: "confirm", Description: "upload file", Scopes: []string{ScopeUpload}},
		{Keys: []string{"ctrl+r"}, Action: "clear-history", Description: "clear history", Scopes: []string{ScopeHistory}},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{ScopeUpload, ScopeHistory}},
	}
}

func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Action) == "" || len(b.Keys) == 0 {
			continue
		}
		if _, exists := out[b.Action]; exists {
			continue
		}
		out[b.Action] = append([]string(nil), b.Keys...)
	}
	return out
}

// ApplyActionKeybindings swaps in user-configured keys per action.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
