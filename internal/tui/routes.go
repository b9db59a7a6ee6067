package tui

// Route paths mirror the dashboard's URL space. The shell maps each to a
// page model and classifies it as public or protected.
const (
	routeRoot           = "/"
	routeLogin          = "/login"
	routeRegister       = "/register"
	routeForgotPassword = "/forgot-password"
	routeDashboard      = "/dashboard"
	routeBanking        = "/banking"
	routeSettings       = "/settings"

	// routeLoading and routeNotFound are internal surfaces, never
	// navigated to directly.
	routeLoading  = "/__loading"
	routeNotFound = "/__not-found"
)

var publicRoutes = map[string]bool{
	routeLogin:          true,
	routeRegister:       true,
	routeForgotPassword: true,
}

func isPublicRoute(path string) bool {
	return publicRoutes[path]
}
