package events

import (
	"net/http"

	"api/middleware"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
)

// GetSolution retrieves the user's submission slot on an event
// @Summary Get Solution
// @Description Get the solution of the user's registration, keyed by team for team events
// @Tags Solutions
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} SolutionStateResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /events/{slug}/solution [get]
// @Security Bearer
func GetSolution(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	participant := services.GetEventParticipant(event.ID, user.ID)
	if participant == nil {
		c.JSON(http.StatusConflict, gin.H{"redirect_to": "/events/" + event.Slug + "/register"})
		return
	}

	c.JSON(http.StatusOK, SolutionStateResponse{
		Solution: lookupSolution(event, participant),
		Editable: event.SolutionsAreEditable(),
	})
}

// SubmitSolution creates or updates the user's submission on an event
// @Summary Submit Solution
// @Description Submit or overwrite the solution of the user's registration. Closed events accept the request but change nothing
// @Tags Solutions
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param solution body services.SolutionFields true "Solution fields"
// @Success 200 {object} SolutionStateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events/{slug}/solution [put]
// @Security Bearer
func SubmitSolution(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	participant := services.GetEventParticipant(event.ID, user.ID)
	if participant == nil {
		c.JSON(http.StatusConflict, gin.H{"redirect_to": "/events/" + event.Slug + "/register"})
		return
	}

	// A submission to a closed event is accepted but changes nothing
	if !event.SolutionsAreEditable() {
		c.JSON(http.StatusOK, SolutionStateResponse{
			Solution: lookupSolution(event, participant),
			Editable: false,
		})
		return
	}

	var fields services.SolutionFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var solution *models.Solution
	if participant.TeamID != nil {
		team, err := services.GetTeamByID(*participant.TeamID)
		if err != nil {
			respondWithError(c, http.StatusNotFound, ErrTeamNotFound)
			return
		}
		solution, err = services.SubmitTeamSolution(event, team, fields)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, ErrFailedSaveSolution)
			return
		}
	} else {
		solution, err = services.SubmitParticipantSolution(event, participant, fields)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, ErrFailedSaveSolution)
			return
		}
	}

	c.JSON(http.StatusOK, SolutionStateResponse{
		Solution: solution,
		Editable: true,
	})
}

// lookupSolution resolves the submission slot of a registration: team-keyed
// when the participant belongs to a team, participant-keyed otherwise
func lookupSolution(event *models.Event, participant *models.Participant) *models.Solution {
	if participant.TeamID != nil {
		return services.GetTeamSolution(event.ID, *participant.TeamID)
	}
	return services.GetParticipantSolution(event.ID, participant.ID)
}
