package routes

import "net/http"

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

// Patterns lists the ServeMux patterns the groups register, in declaration order.
func Patterns(groups ...Group) []string {
	var out []string
	for _, group := range groups {
		out = collect(out, "", group)
	}
	return out
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.pattern(fullPrefix), route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

func collect(out []string, parentPrefix string, group Group) []string {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		out = append(out, route.pattern(fullPrefix))
	}
	for _, child := range group.Children {
		out = collect(out, fullPrefix, child)
	}
	return out
}
