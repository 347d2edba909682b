// Package router tracks which page the application shows.
package router

import (
	"fmt"
	"strings"
)

// Page identifies a top-level screen.
type Page int

const (
	PageDashboard Page = iota
	PageTransactions
	PageTransaction // a single transaction, Route.Param holds its id
	PageBudgets
	PageSettings
	PageHelp
)

var pageNames = map[Page]string{
	PageDashboard:    "dashboard",
	PageTransactions: "transactions",
	PageTransaction:  "transaction",
	PageBudgets:      "budgets",
	PageSettings:     "settings",
	PageHelp:         "help",
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("page(%d)", int(p))
}

// Route is a page plus an optional parameter.
type Route struct {
	Page  Page
	Param string
}

// Dashboard etc. are the parameterless routes.
var (
	Dashboard    = Route{Page: PageDashboard}
	Transactions = Route{Page: PageTransactions}
	Budgets      = Route{Page: PageBudgets}
	Settings     = Route{Page: PageSettings}
	Help         = Route{Page: PageHelp}
)

// TransactionRoute returns the route showing transaction id.
func TransactionRoute(id string) Route {
	return Route{Page: PageTransaction, Param: id}
}

// String renders the route as a path such as "transaction/txn-001".
func (r Route) String() string {
	if r.Param == "" {
		return r.Page.String()
	}
	return r.Page.String() + "/" + r.Param
}

// Parse is the inverse of Route.String.
func Parse(path string) (Route, error) {
	name, param, _ := strings.Cut(strings.Trim(path, "/"), "/")
	for page, n := range pageNames {
		if n != name {
			continue
		}
		if (page == PageTransaction) != (param != "") {
			return Route{}, fmt.Errorf("route %q: parameter mismatch", path)
		}
		return Route{Page: page, Param: param}, nil
	}
	return Route{}, fmt.Errorf("unknown route %q", path)
}

// Router holds the current route and a back stack.
type Router struct {
	current Route
	history []Route
}

// New starts at start with an empty history.
func New(start Route) *Router {
	return &Router{current: start}
}

// Current returns the route being shown.
func (r *Router) Current() Route { return r.current }

// Navigate pushes the current route and moves to to. Navigating to the
// current route is a no-op.
func (r *Router) Navigate(to Route) {
	if to == r.current {
		return
	}
	r.history = append(r.history, r.current)
	r.current = to
}

// Back pops the history. It reports false when there is nowhere to go.
func (r *Router) Back() bool {
	if len(r.history) == 0 {
		return false
	}
	r.current = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	return true
}

// Depth returns the number of routes Back can return to.
func (r *Router) Depth() int { return len(r.history) }
