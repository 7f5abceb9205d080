package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, sessionHeader)
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/menu", listMenuHandler(deps))
	router.GET("/menu/options", listOptionsHandler(deps))

	withSession := router.Group("/", sessionMiddleware())
	withSession.POST("/cart/items", addItemHandler(deps))
	withSession.GET("/cart", getCartHandler(deps))
	withSession.PATCH("/cart/items/:lineID", setQuantityHandler(deps))
	withSession.DELETE("/cart/items/:lineID", removeLineHandler(deps))
	withSession.DELETE("/cart", clearCartHandler(deps))

	withSession.GET("/checkout", checkoutStateHandler(deps))
	withSession.POST("/checkout/begin", checkoutBeginHandler(deps))
	withSession.POST("/checkout/review", checkoutReviewHandler(deps))
	withSession.POST("/checkout/back", checkoutBackHandler(deps))
	withSession.POST("/checkout/dispatch", checkoutDispatchHandler(deps))

	return router
}
