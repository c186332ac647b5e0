package restapi

import (
	"net/http"
	"time"

	"github.com/Gift-726/Bus-Routing/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Middleware wraps next with the shared HTTP stack, outermost first:
// request logging, security headers, CORS, rate limiting and compression.
func (api *RestAPI) Middleware(next http.Handler) http.Handler {
	handler := CompressionMiddleware(next)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = NewCORSMiddleware(api.Config.AllowedOrigins)(handler)
	handler = api.WithSecurityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}

// Close releases background resources.
func (api *RestAPI) Close() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
