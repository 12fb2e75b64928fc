package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomosync/internal/handler"
	"pomosync/internal/middleware"
)

type Handlers struct {
	Pomodoro *handler.PomodoroHandler
	Goals    *handler.GoalHandler
	Media    *handler.MediaHandler
}

func New(handlers Handlers, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))
	engine.NoRoute(handler.NoRoute)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.GET("/state", handlers.Pomodoro.GetState)
	api.GET("/stats", handlers.Pomodoro.GetStats)
	api.POST("/save", handlers.Pomodoro.Save)
	api.GET("/settings", handlers.Pomodoro.GetSettings)
	api.PUT("/settings", handlers.Pomodoro.UpdateSettings)

	timer := api.Group("/timer")
	timer.POST("/toggle", handlers.Pomodoro.Toggle)
	timer.POST("/start", handlers.Pomodoro.Start)
	timer.POST("/pause", handlers.Pomodoro.Pause)
	timer.POST("/reset", handlers.Pomodoro.Reset)
	timer.POST("/skip", handlers.Pomodoro.Skip)
	timer.POST("/mode", handlers.Pomodoro.SwitchMode)

	goals := api.Group("/goals")
	goals.GET("", handlers.Goals.List)
	goals.POST("", handlers.Goals.Add)
	goals.POST("/:id/toggle", handlers.Goals.Toggle)
	goals.PUT("/:id/checked", handlers.Goals.SetChecked)
	goals.POST("/:id/increment", handlers.Goals.Increment)
	goals.POST("/:id/decrement", handlers.Goals.Decrement)
	goals.DELETE("/:id", handlers.Goals.Delete)

	api.PUT("/sources/:phase", handlers.Media.SetSource)

	mediaGroup := api.Group("/media")
	mediaGroup.GET("", handlers.Media.Get)
	mediaGroup.POST("/ready", handlers.Media.Ready)
	mediaGroup.POST("/loaded", handlers.Media.Loaded)
	mediaGroup.POST("/play", handlers.Media.Play)
	mediaGroup.POST("/pause", handlers.Media.Pause)
	mediaGroup.POST("/mute", handlers.Media.ToggleMute)

	return engine
}
