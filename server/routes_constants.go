package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteHome = "/"

	// Auth Routes - Login & Logout
	RouteLogin        = "/login"
	RouteAuthLogin    = "/auth/login/{provider}"
	RouteAuthCallback = "/auth/callback/{provider}"
	RouteAuthLogout   = "/auth/logout"

	// Prompt Routes
	RoutePrompts      = "/prompts"
	RoutePromptCreate = "/prompts/create"
	RoutePromptDetail = "/prompts/{id}"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
