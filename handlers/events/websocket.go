package events

import (
	"log"
	"net/http"

	"api/realtime"
	"api/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventRosterFeed upgrades the connection to a WebSocket streaming roster
// updates of one event
// @Summary Event Roster Feed
// @Description Open a WebSocket that receives a message whenever the event's roster changes
// @Tags Events
// @Param slug path string true "Event slug"
// @Success 101
// @Failure 404 {object} map[string]string
// @Router /events/{slug}/ws [get]
// @Security Bearer
func EventRosterFeed(c *gin.Context) {
	event, err := services.GetEventBySlug(c.Param("slug"))
	if err != nil || !event.Published {
		respondWithError(c, http.StatusNotFound, ErrEventNotFound)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	realtime.RegisterClient(event.ID, conn)
	defer realtime.UnregisterClient(event.ID, conn)

	// Keep the connection open until the client goes away; inbound messages
	// are ignored
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
