package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"automation-dashboard/internal/compute"
	"automation-dashboard/internal/handler"
	"automation-dashboard/internal/store"
	"automation-dashboard/pkg/config"
	"automation-dashboard/pkg/mq"
)

type Router struct {
	Engine *gin.Engine
}

// NewAPIRouter builds the front-door router: task submission and listing,
// health endpoints, and the metrics surface.
func NewAPIRouter(
	taskHandler *handler.TaskHandler,
	taskStore store.TaskStore,
	publisher *mq.Publisher,
	corsCfg config.CORSConfig,
) *Router {
	r := gin.Default()
	r.Use(TraceMiddleware(), MetricsMiddleware(), CORSMiddleware(corsCfg))

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := taskStore.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "store_not_ready", "error": err.Error()})
			return
		}

		if publisher != nil && !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Automation Dashboard API"})
	})

	r.GET("/tasks", taskHandler.ListTasks)
	r.GET("/tasks/:id", taskHandler.GetTask)
	r.POST("/tasks/:type", taskHandler.CreateTask)

	return &Router{Engine: r}
}

// NewComputeRouter builds the compute-unit service router: the invocation
// endpoint plus health endpoints.
func NewComputeRouter(invokeHandler *compute.InvokeHandler) *Router {
	r := gin.Default()
	r.Use(TraceMiddleware(), MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/invoke/:function", invokeHandler.Invoke)

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
