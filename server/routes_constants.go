package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages
	RouteIndex       = "/"
	RouteResources   = "/resources"
	RouteFundraisers = "/fundraisers"
	RouteEvents      = "/events"

	// Auth Routes - Login & Logout
	RouteLogin     = "/login"
	RouteAuthorize = "/authorize"
	RouteLogout    = "/logout"

	// Signed in routes
	RouteAsk = "/ask"

	// Member routes
	RouteQuestions = "/questions"
	RoutePoints    = "/points"

	// Operational routes
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/static/css/{file}"
	RouteStaticJS  = "/static/js/{file}"
)
