// Package router assembles the Gin engine and its routes.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"finance_backend/internal/api"
	authhandler "finance_backend/internal/feature/auth/transport/handler"
	ledgerhandler "finance_backend/internal/feature/ledger/transport/handler"
	jwtmw "finance_backend/internal/platform/jwt"
	platformhandler "finance_backend/internal/platform/http/handler"
	"finance_backend/internal/shared/ratelimiter"
)

// loginAttemptsPerMinute bounds credential attempts per client IP.
const loginAttemptsPerMinute = 10

// throttleByIP rejects requests over the per-IP limit with a 429.
func throttleByIP(rl *ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.ErrorResponse{Error: "too many attempts, try again later"})
			return
		}
		c.Next()
	}
}

// NewRouter builds the Gin engine with the public auth routes and the
// JWT-guarded ledger routes.
func NewRouter(auth *authhandler.AuthHandler, entries *ledgerhandler.EntryHandler, jwtGen jwtmw.Generator) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	throttle := throttleByIP(ratelimiter.NewRateLimiter(loginAttemptsPerMinute, time.Minute))

	// Unauthenticated routes
	r.GET("/healthz", platformhandler.Health)
	r.POST("/signup", throttle, auth.Signup)
	r.POST("/login", throttle, auth.Login)
	r.POST("/refresh", auth.Refresh)
	r.POST("/logout", auth.Logout)

	// Authenticated routes: the bearer token carries the user ID every
	// ledger operation is scoped to.
	g := r.Group("/")
	g.Use(jwtGen.AuthRequired())
	{
		g.GET("/me", auth.Me)

		g.POST("/entries", entries.Create)
		g.GET("/entries", entries.List)
		g.GET("/entries/:id", entries.Get)
		g.PUT("/entries/:id", entries.Update)
		g.PATCH("/entries/:id/status", entries.UpdateStatus)
		g.DELETE("/entries/:id", entries.Delete)

		g.GET("/balance", entries.Balance)
	}

	return r
}
