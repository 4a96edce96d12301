package api

import (
	"testing"

	"github.com/gin-gonic/gin"
)

// TestSetupRoutes tests that routes are properly registered by checking the route tree
func TestSetupRoutes(t *testing.T) {
	u := newUpstream(t)
	server := NewServer(testConfig(u))
	gin.SetMode(gin.TestMode)

	router := gin.New()
	server.setupRoutes(router)

	expectedRoutes := []string{
		"GET /api/v1/health",
		"POST /api/v1/batches/submit",
		"POST /api/v1/mfa/setup",
		"POST /api/v1/mfa/verify",
		"POST /api/v1/password/request",
		"POST /api/v1/password/reset",
	}

	registeredRoutes := make(map[string]bool)
	for _, route := range router.Routes() {
		registeredRoutes[route.Method+" "+route.Path] = true
	}

	for _, expected := range expectedRoutes {
		t.Run(expected, func(t *testing.T) {
			if !registeredRoutes[expected] {
				t.Errorf("Route %s not registered", expected)
			}
		})
	}

	if len(registeredRoutes) != len(expectedRoutes) {
		t.Errorf("Expected %d routes, got %d", len(expectedRoutes), len(registeredRoutes))
	}
}
