package httpserver

import (
	"log"

	"github.com/gin-gonic/gin"

	"hexa_access/internal/access"
	"hexa_access/internal/alerts"
	"hexa_access/internal/auth"
	"hexa_access/internal/events"
	"hexa_access/internal/http/handlers"
	"hexa_access/internal/store"
)

type Dependencies struct {
	Characters store.CharacterStore
	Logs       store.LogStore
	Rules      store.AlertRuleStore
	Recorder   *events.Recorder
	Access     *access.Engine
	Dispatch   alerts.Dispatcher
	JWTSecret  string
	Logger     *log.Logger
}

// NewRouter wires the API. Reads and the access decision endpoint are
// open (doors and dashboards poll them); everything that mutates state
// requires an operator token.
func NewRouter(d Dependencies) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/config", handlers.GetConfig())

		api.POST("/access/request", handlers.RequestAccess(d.Access, d.Logger))
		api.POST("/auth/login", handlers.Login(d.Characters, d.JWTSecret))

		api.GET("/characters", handlers.ListCharacters(d.Characters))
		api.GET("/logs", handlers.ListLogs(d.Recorder))
		api.GET("/alerts", handlers.ListAlerts(d.Rules))

		// Position sync comes from the map client on every zone change,
		// so it stays tokenless like the access endpoint.
		api.PUT("/characters/:id/position", handlers.UpdatePosition(d.Characters))

		authMW := auth.JWT(d.Characters, d.JWTSecret)
		admin := api.Group("", authMW)
		{
			admin.POST("/characters", handlers.CreateCharacter(d.Characters))
			admin.PUT("/characters/:id", handlers.UpdateCharacter(d.Characters))
			admin.DELETE("/characters/:id", handlers.DeleteCharacter(d.Characters))

			admin.POST("/logs", handlers.CreateLog(d.Recorder))

			admin.POST("/alerts", handlers.CreateAlert(d.Rules))
			admin.PUT("/alerts/:id", handlers.UpdateAlert(d.Rules))
			admin.DELETE("/alerts/:id", handlers.DeleteAlert(d.Rules))

			admin.POST("/notifications/email", handlers.SendEmail(d.Dispatch))
			admin.POST("/system/reset", handlers.ResetSystem(d.Logs, d.Rules, d.Characters, d.Recorder))
		}
	}

	return r
}
