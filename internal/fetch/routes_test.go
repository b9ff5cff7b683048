package fetch

import (
	"strings"
	"testing"
)

func TestRoutesWrapTarget(t *testing.T) {
	t.Parallel()

	target := "https://bible.usccb.gov/bible/readings/121525.cfm"
	routes := Routes(DefaultRouteNames())
	if len(routes) != 3 {
		t.Fatalf("expected 3 default routes, got %d", len(routes))
	}

	seen := make(map[string]bool)
	for _, route := range routes {
		wrapped := route.Wrap(target)
		if wrapped == target {
			t.Fatalf("route %q did not rewrite the target", route.Name)
		}
		if !strings.Contains(wrapped, "bible.usccb.gov") {
			t.Fatalf("route %q lost the target URL: %q", route.Name, wrapped)
		}
		if strings.HasPrefix(wrapped, "https://bible.usccb.gov") {
			t.Fatalf("route %q does not forward through a third party: %q", route.Name, wrapped)
		}
		if seen[wrapped] {
			t.Fatalf("two routes produced identical URLs: %q", wrapped)
		}
		seen[wrapped] = true
	}
}

func TestRoutesSkipsUnknownNames(t *testing.T) {
	t.Parallel()

	routes := Routes([]string{"allorigins", "bogus", "codetabs"})
	if len(routes) != 2 {
		t.Fatalf("expected unknown names to be skipped, got %d routes", len(routes))
	}
	if routes[0].Name != RouteAllOrigins || routes[1].Name != RouteCodeTabs {
		t.Fatalf("unexpected route order: %v, %v", routes[0].Name, routes[1].Name)
	}
}

func TestStaticEnvironment(t *testing.T) {
	t.Parallel()

	if StaticEnvironment(false).DirectBlocked() {
		t.Fatal("server environment must not report direct as blocked")
	}
	if !StaticEnvironment(true).DirectBlocked() {
		t.Fatal("browser-like environment must report direct as blocked")
	}
}
