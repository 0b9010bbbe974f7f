package middleware

import (
	"net/http"
	"strings"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog.
// Anonymous storefront calls are attributed to the request id.
func PosthogMiddleware(tracker utils.EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		distinctID, ok := GetUserIDFromContext(c)
		if !ok {
			distinctID = GetRequestID(c.Request.Context())
		}
		if distinctID == "" {
			return
		}

		// "/api/v1/checkout/hosted" -> "api_v1_checkout_hosted"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		tracker.Enqueue(distinctID, eventName, props)
	}
}
