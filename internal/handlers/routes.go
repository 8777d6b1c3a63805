package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/asmrapi/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// Access is the authorization level a route requires
type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

func (a Access) String() string {
	switch a {
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

// DefaultMaxBodyBytes limits request bodies of routes that set no limit of their own
const DefaultMaxBodyBytes int64 = 50 << 20

// Route is one entry of a handler's routing table.
// Tables are ordered: a pattern must not be shadowed by a more general pattern listed before it.
type Route struct {
	Method       string
	Pattern      string
	Access       Access
	Handler      http.HandlerFunc
	MaxBodyBytes int64
}

// RouteTable is implemented by every handler that serves routes
type RouteTable interface {
	Prefix() string
	Routes() []Route
}

// Gate holds the middlewares guarding non-public routes
type Gate struct {
	Auth  func(http.Handler) http.Handler
	Admin func(http.Handler) http.Handler
}

// Mount validates the table of t and registers its routes on r under t.Prefix()
func Mount(r chi.Router, t RouteTable, gate Gate) error {
	routes := t.Routes()
	if err := ValidatePrecedence(routes); err != nil {
		return fmt.Errorf("routes under %q: %w", t.Prefix(), err)
	}

	for _, route := range routes {
		limit := route.MaxBodyBytes
		if limit == 0 {
			limit = DefaultMaxBodyBytes
		}

		var h http.Handler = route.Handler
		switch route.Access {
		case Authenticated:
			h = gate.Auth(h)
		case Admin:
			h = gate.Auth(gate.Admin(h))
		}
		h = middleware.RequestSizeLimitMiddleware(limit)(h)

		r.Method(route.Method, t.Prefix()+route.Pattern, h)
	}
	return nil
}

// ValidatePrecedence rejects a table in which a route would shadow a later, more specific
// route of the same method: same segment count, every segment equal or a parameter, and at
// least one parameter where the later route has a literal.
func ValidatePrecedence(routes []Route) error {
	for i, general := range routes {
		for _, specific := range routes[i+1:] {
			if general.Method != specific.Method {
				continue
			}
			if general.Pattern == specific.Pattern {
				return fmt.Errorf("duplicate route %s %s", general.Method, general.Pattern)
			}
			if shadows(general.Pattern, specific.Pattern) {
				return fmt.Errorf("route %s %s shadows %s", general.Method, general.Pattern, specific.Pattern)
			}
		}
	}
	return nil
}

func shadows(general, specific string) bool {
	g := strings.Split(strings.Trim(general, "/"), "/")
	s := strings.Split(strings.Trim(specific, "/"), "/")
	if len(g) != len(s) {
		return false
	}

	widened := false
	for i := range g {
		switch {
		case g[i] == s[i]:
		case isParam(g[i]) && !isParam(s[i]):
			widened = true
		case isParam(g[i]) && isParam(s[i]):
		default:
			return false
		}
	}
	return widened
}

func isParam(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

// Endpoints lists "METHOD /path" for every route of the tables, in table order
func Endpoints(tables ...RouteTable) []string {
	var endpoints []string
	for _, t := range tables {
		for _, route := range t.Routes() {
			path := t.Prefix() + route.Pattern
			if path == "" {
				path = "/"
			}
			endpoints = append(endpoints, route.Method+" "+path)
		}
	}
	return endpoints
}
