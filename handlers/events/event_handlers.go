package events

import (
	"fmt"
	"net/http"

	"api/middleware"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
)

// GetEvents retrieves all published, non-archived events
// @Summary Get Events
// @Description Get all published events that are not archived
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event
// @Failure 500 {object} map[string]string
// @Router /events [get]
// @Security Bearer
func GetEvents(c *gin.Context) {
	events, err := services.GetPublishedNotArchivedEvents()
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEvents)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetArchivedEvents retrieves all published archived events
// @Summary Get Archived Events
// @Description Get all published events that were moved to the archive
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event
// @Failure 500 {object} map[string]string
// @Router /events/archive [get]
// @Security Bearer
func GetArchivedEvents(c *gin.Context) {
	events, err := services.GetPublishedEvents()
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEvents)
		return
	}
	archived := make([]models.Event, 0, len(events))
	for _, event := range events {
		if event.Archived {
			archived = append(archived, event)
		}
	}
	c.JSON(http.StatusOK, archived)
}

// GetParticipatingEvents retrieves the events the user is registered on
// @Summary Get Participating Events
// @Description Get the events where the authenticated user is a participant
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events/participating [get]
// @Security Bearer
func GetParticipatingEvents(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	events, err := services.GetEventsWhereUserParticipates(user.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEvents)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetSupervisingEvents retrieves the events the user supervises rosters on
// @Summary Get Supervising Events
// @Description Get the events where the authenticated user is a supervisor of record
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events/supervising [get]
// @Security Bearer
func GetSupervisingEvents(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	events, err := services.GetEventsWhereUserSupervises(user.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEvents)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent retrieves a single event by its slug
// @Summary Get Event
// @Description Get a published event with the viewer's registration state
// @Tags Events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} EventDetailResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{slug} [get]
// @Security Bearer
func GetEvent(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	c.JSON(http.StatusOK, EventDetailResponse{
		Event:         event,
		IsParticipant: services.IsUserParticipantOfEvent(event.ID, user.ID),
		HasTask:       services.GetEventTask(event.ID) != nil,
	})
}

// GetEventTask retrieves the task published for an event
// @Summary Get Event Task
// @Description Get the task of an event, 404 when none was published yet
// @Tags Events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} models.Task
// @Failure 404 {object} map[string]string
// @Router /events/{slug}/task [get]
// @Security Bearer
func GetEventTask(c *gin.Context) {
	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	task := services.GetEventTask(event.ID)
	if task == nil {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GetEventQRCode renders a QR code pointing at the event's public page
// @Summary Get Event QR Code
// @Description Get a PNG QR code with the event's public URL
// @Tags Events
// @Produce png
// @Param slug path string true "Event slug"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /events/{slug}/qrcode [get]
// @Security Bearer
func GetEventQRCode(c *gin.Context) {
	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	png, err := services.GenerateEventQRCode(event.Slug, 256)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEvents)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ExportEventRoster exports the full roster of an event as an Excel workbook
// @Summary Export Event Roster
// @Description Export the event's roster to an Excel file, one row per team or participant
// @Tags Events
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param slug path string true "Event slug"
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /events/{slug}/export [get]
// @Security Bearer
func ExportEventRoster(c *gin.Context) {
	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil {
		if services.IsNotFound(err) {
			respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		} else {
			respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEvents)
		}
		return
	}

	buffer, err := services.ExportEventToExcel(event)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=event_%s.xlsx", event.Slug))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}
