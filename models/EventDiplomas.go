package models

// EventDiplomas points at an external bundle of completion certificates for an
// event. Creating one triggers the notification fan-out to the event's roster
type EventDiplomas struct {
    ID      string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    EventID string `gorm:"type:uuid;not null;column:event_id" json:"event_id"`
    URL     string `gorm:"type:varchar(255);not null;column:url" json:"url"`

    Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
