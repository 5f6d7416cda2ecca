package events

import (
	"log"
	"net/http"

	"api/database"
	"api/middleware"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
)

// GetUserDiplomas retrieves the diplomas visible to the user
// @Summary Get User Diplomas
// @Description Get the diplomas of events where the user participates or supervises a roster
// @Tags Diplomas
// @Produce json
// @Success 200 {array} models.EventDiplomas
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /diplomas [get]
// @Security Bearer
func GetUserDiplomas(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	diplomas, err := services.GetUserDiplomas(user.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchDiplomas)
		return
	}
	c.JSON(http.StatusOK, diplomas)
}

// CreateEventDiplomas publishes the diploma bundle of an event and notifies
// the roster
// @Summary Create Event Diplomas
// @Description Publish the diploma bundle URL of an event and fan out the notification email to the roster
// @Tags Diplomas
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param diplomas body CreateDiplomasRequest true "Diploma bundle URL"
// @Success 201 {object} models.EventDiplomas
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events/{slug}/diplomas [post]
// @Security Bearer
func CreateEventDiplomas(c *gin.Context) {
	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil {
		if services.IsNotFound(err) {
			respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		} else {
			respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEvents)
		}
		return
	}

	var req CreateDiplomasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	diplomas := models.EventDiplomas{
		EventID: event.ID,
		URL:     req.URL,
	}
	if err := database.DB.Create(&diplomas).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedCreateDiplomas)
		return
	}

	// The fan-out is asynchronous; a collection failure does not undo the
	// diploma record
	if err := services.NotifyAboutDiplomas(notificationDispatcher(), event, req.URL); err != nil {
		log.Printf("Failed to start diploma fan-out for event %s: %v", event.Slug, err)
	}

	c.JSON(http.StatusCreated, diplomas)
}
