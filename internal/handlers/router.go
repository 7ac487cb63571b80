package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter собирает gin.Engine со всеми маршрутами API.
func NewRouter(h *QueueHandler, allowOrigins []string, logger *logrus.Logger) *gin.Engine {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	queues := r.Group("/api/queues")
	{
		queues.GET("", h.ListQueuesHandler)
		queues.POST("", h.AddQueueHandler)
		queues.GET("/:url_name", h.GetQueueHandler)
		queues.DELETE("/:url_name", h.DeleteQueueHandler)
		queues.GET("/:url_name/entries", h.ListEntriesHandler)
		queues.POST("/:url_name/entries", h.AddPlayerHandler)
		queues.POST("/:url_name/rows", h.AppendRowHandler)
		queues.GET("/:url_name/ws", h.QueueWebSocketHandler)
	}

	r.PUT("/api/rows/:row_id/:side", h.AssignSlotHandler)

	return r
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("запрос завершился ошибкой")
		case c.Writer.Status() >= 400:
			entry.Warn("запрос отклонён")
		default:
			entry.Info("запрос обработан")
		}
	}
}
