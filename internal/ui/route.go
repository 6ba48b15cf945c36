package ui

// Route identifies a screen.
type Route int

const (
	RouteLogin Route = iota
	RouteDashboard
	RouteOrders
	RouteUsers
	RouteProducts
	RouteReports
	RouteAbout
)

// routeHome is where unmatched or redirected navigation lands.
const routeHome = RouteDashboard

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteDashboard:
		return "dashboard"
	case RouteOrders:
		return "orders"
	case RouteUsers:
		return "users"
	case RouteProducts:
		return "products"
	case RouteReports:
		return "reports"
	case RouteAbout:
		return "about"
	}
	return "dashboard"
}

// Title returns the tab label for the header bar.
func (r Route) Title() string {
	switch r {
	case RouteLogin:
		return "Sign in"
	case RouteDashboard:
		return "Dashboard"
	case RouteOrders:
		return "Orders"
	case RouteUsers:
		return "Users"
	case RouteProducts:
		return "Products"
	case RouteReports:
		return "Reports"
	case RouteAbout:
		return "About"
	}
	return "Dashboard"
}

// GuestOnly marks screens reachable only while signed out.
func (r Route) GuestOnly() bool {
	return r == RouteLogin
}

// tabRoutes are the screens cycled through with tab, in header order.
var tabRoutes = []Route{RouteDashboard, RouteOrders, RouteUsers, RouteProducts, RouteReports, RouteAbout}

func nextTabRoute(current Route, reverse bool) Route {
	idx := 0
	for i, r := range tabRoutes {
		if r == current {
			idx = i
			break
		}
	}
	if reverse {
		idx = (idx - 1 + len(tabRoutes)) % len(tabRoutes)
	} else {
		idx = (idx + 1) % len(tabRoutes)
	}
	return tabRoutes[idx]
}
