package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	eventClients = make(map[string]map[*websocket.Conn]bool) // Map of event ID to connected clients
	broadcast    = make(chan RosterUpdate)                   // Broadcast channel for updates
	mutex        sync.Mutex                                  // Mutex to protect eventClients map
)

// RosterUpdate announces a roster change of an event to connected clients
type RosterUpdate struct {
	EventID    string `json:"event_id"`
	UpdateType string `json:"update_type"` // "registered" or "edited"
	TeamID     string `json:"team_id,omitempty"`
}

// RegisterClient adds a WebSocket client to a specific event feed
func RegisterClient(eventID string, conn *websocket.Conn) {
	mutex.Lock()
	if eventClients[eventID] == nil {
		eventClients[eventID] = make(map[*websocket.Conn]bool)
	}
	eventClients[eventID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific event feed
func UnregisterClient(eventID string, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := eventClients[eventID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(eventClients, eventID)
		}
	}
	mutex.Unlock()
}

// BroadcastRosterUpdate sends an update to all clients watching the event
func BroadcastRosterUpdate(update RosterUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := eventClients[update.EventID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
