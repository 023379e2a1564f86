package http

import "net/http"

// NewRouter wires the scenario routes, each behind the rate limiter.
func NewRouter(h *ScenarioHandler, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()

	routes := map[string]http.HandlerFunc{
		"POST /projection/calculate": h.Calculate,
		"GET /scenarios":             h.List,
		"POST /scenarios":            h.Create,
		"GET /scenarios/report.pdf":  h.Report,
		"GET /scenarios/{index}":     h.Get,
		"PUT /scenarios/{index}":     h.Update,
		"DELETE /scenarios/{index}":  h.Delete,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, RateLimitMiddleware(limiter, handler))
	}

	return mux
}
