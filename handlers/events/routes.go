package events

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to events
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/events")
	events.Use(middleware.AuthMiddleware())
	{
		// Event listings and details
		events.GET("/", GetEvents)
		events.GET("/archive", GetArchivedEvents)
		events.GET("/participating", GetParticipatingEvents)
		events.GET("/supervising", GetSupervisingEvents)
		events.GET("/:slug", GetEvent)
		events.GET("/:slug/task", GetEventTask)
		events.GET("/:slug/qrcode", GetEventQRCode)
		events.GET("/:slug/ws", EventRosterFeed)

		// Registration and roster edit routes
		events.POST("/:slug/register", RegisterOnEvent)
		events.GET("/:slug/registration", GetRegistration)
		events.PUT("/:slug/registration", EditRegistration)
		events.GET("/:slug/supervised", GetSupervisedRosters)
		events.PUT("/:slug/teams/:team_id", EditSupervisedTeam)
		events.PUT("/:slug/participants/:participant_id", EditSupervisedParticipant)

		// Solution routes
		events.GET("/:slug/solution", GetSolution)
		events.PUT("/:slug/solution", SubmitSolution)

		// Staff routes
		events.GET("/:slug/export", middleware.StaffRequired(), ExportEventRoster)
		events.POST("/:slug/diplomas", middleware.StaffRequired(), CreateEventDiplomas)
	}

	diplomas := r.Group("/diplomas")
	diplomas.Use(middleware.AuthMiddleware())
	{
		diplomas.GET("/", GetUserDiplomas)
	}
}
