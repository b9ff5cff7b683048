package fetch

import (
	"fmt"
	"net/url"
)

// Route is one alternate retrieval path: a named rewriting of the
// target URL through a third-party forwarding service. All routes are
// best-effort, unauthenticated infrastructure outside our control.
type Route struct {
	Name string
	// Wrap rewrites the target URL into the route's fetchable form.
	Wrap func(target string) string
}

// Known route names accepted in configuration.
const (
	RouteAllOrigins = "allorigins"
	RouteCORSProxy  = "corsproxy"
	RouteCodeTabs   = "codetabs"
)

var routeCatalog = map[string]Route{
	RouteAllOrigins: {
		Name: RouteAllOrigins,
		Wrap: func(target string) string {
			return fmt.Sprintf("https://api.allorigins.win/raw?url=%s", url.QueryEscape(target))
		},
	},
	RouteCORSProxy: {
		Name: RouteCORSProxy,
		Wrap: func(target string) string {
			return fmt.Sprintf("https://corsproxy.io/?url=%s", url.QueryEscape(target))
		},
	},
	RouteCodeTabs: {
		Name: RouteCodeTabs,
		Wrap: func(target string) string {
			return fmt.Sprintf("https://api.codetabs.com/v1/proxy?quest=%s", url.QueryEscape(target))
		},
	},
}

// Routes resolves configured route names to concrete routes, skipping
// names not in the catalog.
func Routes(names []string) []Route {
	routes := make([]Route, 0, len(names))
	for _, name := range names {
		if route, ok := routeCatalog[name]; ok {
			routes = append(routes, route)
		}
	}
	return routes
}

// DefaultRouteNames lists every catalog route in preference order.
func DefaultRouteNames() []string {
	return []string{RouteAllOrigins, RouteCORSProxy, RouteCodeTabs}
}
