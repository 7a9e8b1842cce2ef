package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/server/handlers"
)

// Handlers groups the HTTP adapters the router wires up.
type Handlers struct {
	Sells    *handlers.SellsHandler
	Menu     *handlers.MenuHandler
	Purchase *handlers.PurchaseHandler
	User     *handlers.UserHandler
	Report   *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/open-sells", h.Sells.ListOpen)
	r.POST("/open-sells", h.Sells.Open)
	r.POST("/open-sells/sync", h.Sells.Sync)
	r.POST("/open-sells/close", h.Sells.Close)
	r.GET("/open-sells/:id", h.Sells.Get)
	r.DELETE("/open-sells/:id", h.Sells.Delete)

	r.GET("/menu", h.Menu.List)
	r.POST("/menu", h.Menu.Create)
	r.GET("/menu/:id", h.Menu.Get)
	r.PUT("/menu/:id", h.Menu.Update)
	r.DELETE("/menu/:id", h.Menu.Delete)

	r.GET("/expenses", h.Purchase.ListOpen)
	r.POST("/expenses", h.Purchase.Create)
	r.POST("/expenses/close", h.Purchase.Close)
	r.GET("/expenses/:id", h.Purchase.Get)
	r.PUT("/expenses/:id", h.Purchase.Update)
	r.DELETE("/expenses/:id", h.Purchase.Delete)

	r.GET("/users", h.User.List)
	r.POST("/users", h.User.Create)
	r.GET("/users/:id", h.User.Get)
	r.PUT("/users/:id", h.User.Update)
	r.PUT("/users/:id/password", h.User.ChangePassword)
	r.DELETE("/users/:id", h.User.Delete)

	r.GET("/report", h.Report.Get)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
