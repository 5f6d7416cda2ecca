package events

import (
	"net/http"

	"api/middleware"
	"api/models"
	"api/realtime"
	"api/services"
	"api/utils/response"

	"github.com/gin-gonic/gin"
)

// RegisterOnEvent registers the user (or a named student, for staff actors) on
// an event
// @Summary Register On Event
// @Description Submit a registration for an event. Team events take a full roster, individual events a supervisor only
// @Tags Registration
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param form body services.RegistrationForm true "Registration form"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /events/{slug}/register [post]
// @Security Bearer
func RegisterOnEvent(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	gate := services.RegisterGate(event, services.IsUserParticipantOfEvent(event.ID, user.ID))
	if gate.RedirectTo != "" {
		c.JSON(http.StatusConflict, gin.H{"redirect_to": gate.RedirectTo})
		return
	}
	if !gate.Allow {
		respondWithError(c, http.StatusForbidden, ErrRegistrationClosed)
		return
	}

	var form services.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	fieldErrors, err := services.NewRegistrationService().Register(event, user, form)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedRegister)
		return
	}
	if fieldErrors.HasErrors() {
		response.ValidationError(c, fieldErrors)
		return
	}

	realtime.BroadcastRosterUpdate(realtime.RosterUpdate{
		EventID:    event.ID,
		UpdateType: "registered",
	})
	c.JSON(http.StatusCreated, gin.H{"redirect_to": "/events/" + event.Slug + "/registration"})
}

// GetRegistration retrieves the user's current registration on an event
// @Summary Get Registration
// @Description Get the user's registration state, including the team roster for team events
// @Tags Registration
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} RegistrationStateResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /events/{slug}/registration [get]
// @Security Bearer
func GetRegistration(c *gin.Context) {
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

	c.JSON(http.StatusOK, buildRegistrationState(event, participant))
}

// EditRegistration edits the user's own registration on an event
// @Summary Edit Registration
// @Description Update the user's registration. Team events take a full roster replace, individual events a supervisor overwrite
// @Tags Registration
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param form body services.RegistrationForm true "Registration form"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /events/{slug}/registration [put]
// @Security Bearer
func EditRegistration(c *gin.Context) {
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
	gate := services.EditGate(event, participant != nil)
	if gate.RedirectTo != "" {
		c.JSON(http.StatusConflict, gin.H{"redirect_to": gate.RedirectTo})
		return
	}
	if !gate.Allow {
		// Closed events stay visible but accept no changes
		c.JSON(http.StatusOK, gin.H{"message": ErrRegistrationClosed, "editable": false})
		return
	}

	var form services.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	applyRosterEdit(c, event, participant, form)
}

// GetSupervisedRosters lists the rosters the user supervises on an event
// @Summary Get Supervised Rosters
// @Description Get the teams and standalone participants the user is the supervisor of record for
// @Tags Registration
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} SupervisedRostersResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events/{slug}/supervised [get]
// @Security Bearer
func GetSupervisedRosters(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	teams, err := services.GetTeamsWithSupervisor(event.ID, user.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchRoster)
		return
	}
	participants, err := services.GetParticipantsWithSupervisor(event.ID, user.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchRoster)
		return
	}

	c.JSON(http.StatusOK, SupervisedRostersResponse{
		Teams:        teams,
		Participants: participants,
	})
}

// EditSupervisedTeam edits a team the user supervises
// @Summary Edit Supervised Team
// @Description Update a team roster as its supervisor of record or as staff
// @Tags Registration
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param team_id path string true "Team ID"
// @Param form body services.RegistrationForm true "Registration form"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /events/{slug}/teams/{team_id} [put]
// @Security Bearer
func EditSupervisedTeam(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	team, err := services.GetTeamByID(c.Param("team_id"))
	if err != nil || team.EventID != event.ID {
		respondWithError(c, http.StatusNotFound, ErrTeamNotFound)
		return
	}
	if !user.IsStaff && (team.SupervisorID == nil || *team.SupervisorID != user.ID) {
		respondWithError(c, http.StatusForbidden, ErrNotSupervisorOfRecord)
		return
	}
	if !event.RegistrationIsOpen() {
		c.JSON(http.StatusOK, gin.H{"message": ErrRegistrationClosed, "editable": false})
		return
	}

	var form services.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	fieldErrors, err := services.NewRegistrationService().EditTeam(event, team, form)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedEditRegistration)
		return
	}
	if fieldErrors.HasErrors() {
		response.ValidationError(c, fieldErrors)
		return
	}

	realtime.BroadcastRosterUpdate(realtime.RosterUpdate{
		EventID:    event.ID,
		UpdateType: "edited",
		TeamID:     team.ID,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Team updated"})
}

// EditSupervisedParticipant edits a standalone participant the user supervises
// @Summary Edit Supervised Participant
// @Description Update a participant's supervisor as the supervisor of record or as staff
// @Tags Registration
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param participant_id path string true "Participant ID"
// @Param form body services.RegistrationForm true "Registration form"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /events/{slug}/participants/{participant_id} [put]
// @Security Bearer
func EditSupervisedParticipant(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	participant, err := services.GetParticipantByID(c.Param("participant_id"))
	if err != nil || participant.EventID != event.ID {
		respondWithError(c, http.StatusNotFound, ErrParticipantNotFound)
		return
	}
	if !user.IsStaff && (participant.SupervisorID == nil || *participant.SupervisorID != user.ID) {
		respondWithError(c, http.StatusForbidden, ErrNotSupervisorOfRecord)
		return
	}
	if !event.RegistrationIsOpen() {
		c.JSON(http.StatusOK, gin.H{"message": ErrRegistrationClosed, "editable": false})
		return
	}

	var form services.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	fieldErrors, err := services.NewRegistrationService().EditIndividual(event, participant, form)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedEditRegistration)
		return
	}
	if fieldErrors.HasErrors() {
		response.ValidationError(c, fieldErrors)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Participant updated"})
}

// applyRosterEdit routes a self-service edit to the individual or team flow
// depending on what the participant row is attached to
func applyRosterEdit(c *gin.Context, event *models.Event, participant *models.Participant, form services.RegistrationForm) {
	service := services.NewRegistrationService()

	var fieldErrors services.FieldErrors
	var teamID string
	var err error

	if participant.TeamID != nil {
		var team *models.Team
		team, err = services.GetTeamByID(*participant.TeamID)
		if err != nil {
			respondWithError(c, http.StatusNotFound, ErrTeamNotFound)
			return
		}
		teamID = team.ID
		fieldErrors, err = service.EditTeam(event, team, form)
	} else {
		fieldErrors, err = service.EditIndividual(event, participant, form)
	}

	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedEditRegistration)
		return
	}
	if fieldErrors.HasErrors() {
		response.ValidationError(c, fieldErrors)
		return
	}

	realtime.BroadcastRosterUpdate(realtime.RosterUpdate{
		EventID:    event.ID,
		UpdateType: "edited",
		TeamID:     teamID,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Registration updated"})
}

// buildRegistrationState assembles the state shown on the registration page
func buildRegistrationState(event *models.Event, participant *models.Participant) RegistrationStateResponse {
	state := RegistrationStateResponse{
		Event:       event,
		Participant: participant,
		Editable:    event.RegistrationIsOpen(),
	}

	if participant.TeamID != nil {
		if team, err := services.GetTeamByID(*participant.TeamID); err == nil {
			state.Team = team
			for i := range team.Participants {
				state.Members = append(state.Members, team.Participants[i].DisplayName())
			}
		}
	}
	return state
}
