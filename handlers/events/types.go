package events

import (
	"sync"

	"api/config"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrEventNotFound          = "Event not found"
	ErrTeamNotFound           = "Team not found"
	ErrParticipantNotFound    = "Participant not found"
	ErrRegistrationClosed     = "Registration is closed for this event"
	ErrNotSupervisorOfRecord  = "User is not the supervisor of this roster"
	ErrFailedFetchEvents      = "Failed to fetch events"
	ErrFailedFetchRoster      = "Failed to fetch roster"
	ErrFailedFetchDiplomas    = "Failed to fetch diplomas"
	ErrFailedRegister         = "Failed to register on event"
	ErrFailedEditRegistration = "Failed to edit registration"
	ErrFailedSaveSolution     = "Failed to save solution"
	ErrFailedCreateDiplomas   = "Failed to publish diplomas"
	ErrFailedExport           = "Failed to export event roster"
	ErrInvalidRequest         = "Invalid request data"
)

// RegistrationStateResponse is the shared rendering surface of the register
// and edit flows: what is currently stored plus whether it may be changed
type RegistrationStateResponse struct {
	Event       *models.Event       `json:"event"`
	Participant *models.Participant `json:"participant,omitempty"`
	Team        *models.Team        `json:"team,omitempty"`
	Members     []string            `json:"members,omitempty"`
	Editable    bool                `json:"editable"`
}

// EventDetailResponse decorates an event with the viewer's registration state
type EventDetailResponse struct {
	Event         *models.Event `json:"event"`
	IsParticipant bool          `json:"is_participant"`
	HasTask       bool          `json:"has_task"`
}

// SupervisedRostersResponse lists the rosters a supervisor may pick as edit
// target
type SupervisedRostersResponse struct {
	Teams        []models.Team        `json:"teams"`
	Participants []models.Participant `json:"participants"`
}

// SolutionStateResponse carries the submission slot and its editability
type SolutionStateResponse struct {
	Solution *models.Solution `json:"solution"`
	Editable bool             `json:"editable"`
}

// CreateDiplomasRequest model for publishing an event's diplomas
type CreateDiplomasRequest struct {
	URL string `json:"url" binding:"required,url"`
}

var (
	dispatcherOnce sync.Once
	dispatcher     *services.NotificationDispatcher
)

// notificationDispatcher lazily starts the shared diploma dispatcher so it
// picks up configuration loaded in main
func notificationDispatcher() *services.NotificationDispatcher {
	dispatcherOnce.Do(func() {
		dispatcher = services.NewNotificationDispatcher(services.NewEmailService(), config.DefaultNotificationConfig)
	})
	return dispatcher
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
